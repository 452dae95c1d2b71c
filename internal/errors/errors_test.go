package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "scheduler error",
			code:    "R001",
			wantMsg: "Possible infinite update loop",
			wantCat: CategoryScheduler,
		},
		{
			name:    "patch error",
			code:    "P001",
			wantMsg: "Duplicate keys detected",
			wantCat: CategoryPatch,
		},
		{
			name:    "config error",
			code:    "C002",
			wantMsg: "Invalid config format",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "Z999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRuntime, "key %q missing", "count")
	if err.Message != `key "count" missing` {
		t.Errorf("Message = %q, want %q", err.Message, `key "count" missing`)
	}
	if err.Category != CategoryRuntime {
		t.Errorf("Category = %q, want %q", err.Category, CategoryRuntime)
	}
}

func TestError_Error(t *testing.T) {
	got := New("R001").Error()
	want := "R001: Possible infinite update loop"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &Error{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	wrapped := New("R003").Wrap(stderrors.New("boom"))
	if wrapped.Error() != "R003: Callback failed: boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestError_Wrap(t *testing.T) {
	inner := stderrors.New("inner")
	outer := New("R002").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see through Error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R003") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("R001")
	if FromError(e, "R002") != e {
		t.Error("FromError should return *Error as-is")
	}

	std := stderrors.New("plain")
	result := FromError(std, "R003")
	if result.Wrapped != std {
		t.Error("standard error should be wrapped")
	}
	if result.Code != "R003" {
		t.Errorf("Code = %q, want R003", result.Code)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("R002").Wrap(stderrors.New("x"))
	outer := New("R003").Wrap(inner)

	if !HasCode(outer, "R003") {
		t.Error("expected outer code")
	}
	if !HasCode(outer, "R002") {
		t.Error("expected wrapped code")
	}
	if HasCode(outer, "R001") {
		t.Error("unexpected code match")
	}
	if HasCode(stderrors.New("x"), "R001") {
		t.Error("plain error has no code")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer func() { colorEnabled = true }()

	err := New("R001").
		WithOwner("TodoList").
		WithInfo("watcher 3").
		WithSuggestion("Avoid writing state the watcher reads")

	out := err.Format()
	for _, want := range []string{
		"ERROR R001: Possible infinite update loop",
		"in TodoList (watcher 3)",
		"Hint: Avoid writing state the watcher reads",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer func() { colorEnabled = true }()

	var b bytes.Buffer
	PrintError(&b, fmt.Errorf("loading: %w", New("C003").WithDetail("log.format must be text")))
	out := b.String()
	if !strings.Contains(out, "ERROR C003: Invalid config value") {
		t.Errorf("PrintError() missing code line in:\n%s", out)
	}
	if !strings.Contains(out, "log.format must be text") {
		t.Errorf("PrintError() missing detail in:\n%s", out)
	}

	b.Reset()
	PrintError(&b, stderrors.New("unknown command"))
	if got := b.String(); got != "\nERROR: unknown command\n\n" {
		t.Errorf("PrintError() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("W001").Wrap(stderrors.New("short buffer"))
	got := err.FormatJSON()
	for _, want := range []string{`"code":"W001"`, `"category":"wire"`, `"cause":"short buffer"`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() = %s, missing %s", got, want)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestRegistryComplete(t *testing.T) {
	codes := GetAllCodes()
	if !slices.IsSorted(codes) {
		t.Errorf("GetAllCodes() not sorted: %v", codes)
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template", code)
		}
	}
}
