package validator

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strongpassword"`
	Confirm  string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type item struct {
	Text string `json:"text" validate:"required,min=3"`
}

type batch struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
}

type listQuery struct {
	SortBy string `form:"sortBy" validate:"oneof=order createdAt"`
	Slug   string `form:"slug" validate:"omitempty,slug"`
}

func TestTranslateUsesTagNames(t *testing.T) {
	err := ValidateStruct(&signup{Email: "nope", Password: "alllowercase1", Confirm: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := map[string]bool{}
	for _, fe := range Translate(err, "body") {
		got[fe.Field] = true
	}
	for _, want := range []string{"email", "password", "confirmPassword"} {
		if !got[want] {
			t.Fatalf("missing field %q in %v", want, got)
		}
	}
}

func TestTranslateNestedPath(t *testing.T) {
	err := ValidateStruct(&batch{Items: []item{{Text: "okay"}, {Text: "x"}}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := Translate(err, "body")
	if len(fields) != 1 || fields[0].Field != "items[1].text" {
		t.Fatalf("Translate = %+v; want items[1].text", fields)
	}
}

func TestTranslateDecodeErrors(t *testing.T) {
	typeErr := json.Unmarshal([]byte(`{"items":"x"}`), &batch{})
	_, numErr := strconv.ParseInt("abc", 10, 64)
	_, boolErr := strconv.ParseBool("maybe")

	tests := []struct {
		name    string
		err     error
		field   string
		message string
	}{
		{"json type", typeErr, "items", "must be an array"},
		{"number", numErr, "query", "must be a number"},
		{"boolean", boolErr, "query", "must be a boolean"},
		{"other", errors.New("reflect: call of reflect.Value.Set"), "query", "is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.err, "query")
			if len(got) != 1 || got[0].Field != tt.field || got[0].Message != tt.message {
				t.Fatalf("Translate = %+v; want %s %q", got, tt.field, tt.message)
			}
		})
	}
}

func TestQueryTags(t *testing.T) {
	if err := ValidateStruct(&listQuery{SortBy: "order", Slug: "jibn-1"}); err != nil {
		t.Fatalf("valid query rejected: %v", err)
	}
	err := ValidateStruct(&listQuery{SortBy: "views", Slug: "Bad Slug"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(Translate(err, "query")); n != 2 {
		t.Fatalf("got %d field errors; want 2", n)
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Admin@123456", true},
		{"Password1", true},
		{"password1", false},
		{"PASSWORD1", false},
		{"Password", false},
	}
	for _, tt := range tests {
		err := ValidateStruct(&signup{Email: "a@b.co", Password: tt.password, Confirm: tt.password})
		if (err == nil) != tt.ok {
			t.Fatalf("password %q: err = %v; want ok=%v", tt.password, err, tt.ok)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	fields := Translate(errors.New("invalid character"), "body")
	if len(fields) != 1 || fields[0].Field != "body" {
		t.Fatalf("Translate fallback = %+v", fields)
	}
}
