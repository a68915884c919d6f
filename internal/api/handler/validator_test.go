package handler

import (
	"strings"
	"testing"
)

func TestValidator_StrongPassword(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd", true},
		{"Aa345678", true},
		{"passw0rd", false}, // no uppercase
		{"PASSWORD1", true},
		{"Password", false}, // no digit
		{"12345678", false}, // no uppercase
	}
	for _, tc := range cases {
		req := signupRequest{Username: "alice", Password: tc.password}
		err := v.Validate(&req)
		if tc.valid && err != nil {
			t.Errorf("%q: expected valid, got %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%q: expected validation failure", tc.password)
		}
	}
}

func TestValidator_UsernameRules(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		username string
		valid    bool
	}{
		{"alice", true},
		{"Alice99", true},
		{"ab", false},                          // below min length
		{"user name", false},                   // whitespace
		{"user@host", false},                   // symbol
		{strings.Repeat("a", 31), false},       // above max length
		{strings.Repeat("a", 30), true},
	}
	for _, tc := range cases {
		req := signupRequest{Username: tc.username, Password: "Passw0rd"}
		err := v.Validate(&req)
		if tc.valid && err != nil {
			t.Errorf("%q: expected valid, got %v", tc.username, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%q: expected validation failure", tc.username)
		}
	}
}

func TestValidator_MessageFormat(t *testing.T) {
	v := NewValidator()

	req := signupRequest{Username: "", Password: "weak"}
	err := v.Validate(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "username is required") {
		t.Errorf("missing username message: %s", msg)
	}
	if !strings.Contains(msg, "password must be at least 8 characters") {
		t.Errorf("missing password message: %s", msg)
	}
}

func TestValidator_ListQueryRules(t *testing.T) {
	v := NewValidator()

	min := 5.0
	valid := listProductsRequest{MinPrice: &min, SortBy: "price", SortOrder: "asc", Limit: 20}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("expected valid query, got %v", err)
	}

	bad := listProductsRequest{SortBy: "description"}
	err := v.Validate(&bad)
	if err == nil {
		t.Fatal("expected rejection of unknown sort field")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
