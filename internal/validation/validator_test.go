package validation

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func registerFields(password string) map[string]string {
	return map[string]string{
		"fullName": "Amina Khan",
		"email":    "amina@gmail.com",
		"password": password,
	}
}

func TestRegisterChainAcceptsValidPayload(t *testing.T) {
	failures := RegisterChain().Run(registerFields("Abcd1234!"))
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %v", failures)
	}
}

func TestRegisterChainCollectsAllFailures(t *testing.T) {
	failures := RegisterChain().Run(map[string]string{})
	want := []string{"Full Name is required", "Email is required", "Password is required"}
	for _, msg := range want {
		if !contains(failures, msg) {
			t.Fatalf("expected %q among failures, got %v", msg, failures)
		}
	}
	if len(failures) != len(want) {
		t.Fatalf("expected exactly the required-field failures, got %v", failures)
	}
}

func TestPasswordPurelyLowercaseFails(t *testing.T) {
	failures := RegisterChain().Run(registerFields("abcdefgh"))
	if !contains(failures, "Password must contain at least one number or special character") {
		t.Fatalf("expected purely-alphabetic rejection, got %v", failures)
	}
	if !contains(failures, "Password must contain at least one uppercase letter") {
		t.Fatalf("expected uppercase rule to fire independently, got %v", failures)
	}
}

func TestPasswordPurelyNumericFails(t *testing.T) {
	failures := RegisterChain().Run(registerFields("12345678"))
	if !contains(failures, "Password cannot contain only numbers") {
		t.Fatalf("expected purely-numeric rejection, got %v", failures)
	}
}

func TestPasswordRedundantRulesTriggerIndependently(t *testing.T) {
	// Mixed case plus digit: the purely-alphabetic and purely-numeric rules
	// pass while the special-character rule still fires on its own.
	failures := RegisterChain().Run(registerFields("Abcd1234"))
	if len(failures) != 1 || failures[0] != "Password must contain at least one special character" {
		t.Fatalf("expected only the special-character failure, got %v", failures)
	}
}

func TestEmailDomainAllowList(t *testing.T) {
	fields := registerFields("Abcd1234!")
	fields["email"] = "someone@example.org"
	failures := RegisterChain().Run(fields)
	if !contains(failures, "Email domain not allowed") {
		t.Fatalf("expected allow-list rejection, got %v", failures)
	}
}

func TestEmailDisposableDenyList(t *testing.T) {
	fields := registerFields("Abcd1234!")
	fields["email"] = "someone@10minutemail.com"
	failures := RegisterChain().Run(fields)
	if !contains(failures, "Temporary email addresses are not allowed") {
		t.Fatalf("expected deny-list rejection, got %v", failures)
	}
	// A disposable domain is also outside the allow-list; both rules fire.
	if !contains(failures, "Email domain not allowed") {
		t.Fatalf("expected allow-list rejection too, got %v", failures)
	}
}

func TestCanonicalEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"John.Doe+shop@Gmail.com", "johndoe@gmail.com"},
		{"j.o.h.n@googlemail.com", "john@googlemail.com"},
		{"jane+promo@outlook.com", "jane@outlook.com"},
		{"jane-promo@yahoo.com", "jane@yahoo.com"},
		{"Plain@Company.com", "plain@company.com"},
		{"notanemail", "notanemail"},
	}
	for _, tc := range cases {
		if got := CanonicalEmail(tc.in); got != tc.want {
			t.Fatalf("CanonicalEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckUpload(t *testing.T) {
	if failures := CheckUpload(nil, "Cloth image"); len(failures) != 1 || !strings.Contains(failures[0], "required") {
		t.Fatalf("expected missing-file failure, got %v", failures)
	}

	ok := fileHeader("image/jpeg", 1024)
	if failures := CheckUpload(ok, "Cloth image"); len(failures) != 0 {
		t.Fatalf("expected valid upload, got %v", failures)
	}

	big := fileHeader("image/png", (10<<20)+1)
	if failures := CheckUpload(big, "Cloth image"); !contains(failures, "File size must be less than 10MB") {
		t.Fatalf("expected size failure, got %v", failures)
	}

	pdf := fileHeader("application/pdf", 1024)
	if failures := CheckUpload(pdf, "Cloth image"); !contains(failures, "Only image files are allowed") {
		t.Fatalf("expected mime failure, got %v", failures)
	}
}

func fileHeader(mime string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "file",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{mime}},
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
