package console

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func scripted(lines ...string) (*Input, *strings.Builder) {
	var out strings.Builder
	return NewInputFrom(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out), &out
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a.b+c@mail.example.co.uk", true},
		{"nobody", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"spaced name@example.com", false},
	}
	for _, tc := range cases {
		if got := ValidEmail(tc.in); got != tc.want {
			t.Errorf("ValidEmail(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"5550100123", true},
		{"+1 555-010-0123", true},
		{"12345", false},
		{"phone", false},
		{"+++555", false},
	}
	for _, tc := range cases {
		if got := ValidPhone(tc.in); got != tc.want {
			t.Errorf("ValidPhone(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestReadIntRepromptsUntilValid(t *testing.T) {
	in, out := scripted("abc", "0", "42")

	v, err := in.ReadInt("n: ", 1, 100)
	if err != nil {
		t.Fatalf("ReadInt err=%v", err)
	}
	if v != 42 {
		t.Fatalf("got %d want 42", v)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Fatal("expected re-prompt message")
	}
}

func TestReadAmountRejectsSubCent(t *testing.T) {
	in, _ := scripted("10.001", "-3", "10.25")

	v, err := in.ReadAmount("amount: ", decimal.RequireFromString("0.01"), decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("ReadAmount err=%v", err)
	}
	if !v.Equal(decimal.RequireFromString("10.25")) {
		t.Fatalf("got %s want 10.25", v)
	}
}

func TestReadLineTrimsAndBounds(t *testing.T) {
	in, _ := scripted("   ", strings.Repeat("x", 60), "  Alice  ")

	v, err := in.ReadLine("name: ", 50)
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if v != "Alice" {
		t.Fatalf("got %q want Alice", v)
	}
}

func TestReadEmailReprompts(t *testing.T) {
	in, _ := scripted("not-an-email", "alice@example.com")

	v, err := in.ReadEmail("email: ", 64)
	if err != nil {
		t.Fatalf("ReadEmail err=%v", err)
	}
	if v != "alice@example.com" {
		t.Fatalf("got %q", v)
	}
}

func TestConfirm(t *testing.T) {
	in, _ := scripted("maybe", "Y")
	ok, err := in.Confirm("sure? ")
	if err != nil {
		t.Fatalf("Confirm err=%v", err)
	}
	if !ok {
		t.Fatal("want true")
	}

	in, _ = scripted("n")
	ok, err = in.Confirm("sure? ")
	if err != nil || ok {
		t.Fatalf("want false,nil got %v,%v", ok, err)
	}
}

func TestReadIntOnClosedInput(t *testing.T) {
	in := NewInputFrom(strings.NewReader(""), io.Discard)
	if _, err := in.ReadInt("n: ", 1, 9); err == nil {
		t.Fatal("want error on exhausted input")
	}
}
