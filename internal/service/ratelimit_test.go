package service

import "testing"

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(testContext(), nil, "tutor", "login", 0)
	if err != nil {
		t.Fatalf("CheckAndSetRateLimit() error = %v", err)
	}
	if !allowed {
		t.Error("nil client should always allow")
	}

	if err := ClearRateLimit(testContext(), nil, "tutor", "login"); err != nil {
		t.Errorf("ClearRateLimit() error = %v", err)
	}
}

func TestLoginSucceedsBackToBack(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(t, db)
	seedTutor(t, db, "tutor")

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(testContext(), LoginInput{Username: "tutor", Password: "secret"}); err != nil {
			t.Fatalf("Login() attempt %d error = %v", i+1, err)
		}
	}
}
