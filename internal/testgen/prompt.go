package testgen

import "fmt"

const systemPrompt = "You are a test generator. You create questions strictly according to the user's requirements."

func buildPrompt(material string) string {
	return fmt.Sprintf(`Create a test based ONLY on the study material below.

Requirements:
1. 10 questions, each with four answer options (A-D) and exactly one correct option.
2. Every question must be answerable from the material alone; do not use outside knowledge.
3. Cover the material evenly instead of focusing on one section.
4. After the questions, output an answer key in the form "1: B".

Study material:
%s`, material)
}
