package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("jdoe\r\nse cret\n"), &out)

	name, err := p.Line("Username: ")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	secret, err := p.Secret("Password: ")
	if err != nil {
		t.Fatalf("Secret() error = %v", err)
	}

	if name != "jdoe" {
		t.Errorf("Line() = %q, want jdoe", name)
	}
	if secret != "se cret" {
		t.Errorf("Secret() = %q, want %q", secret, "se cret")
	}
	if out.String() != "Username: Password: " {
		t.Errorf("labels = %q", out.String())
	}
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("jdoe"), io.Discard)

	name, err := p.Line("")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if name != "jdoe" {
		t.Errorf("Line() = %q, want jdoe", name)
	}

	if _, err := p.Line(""); err != io.EOF {
		t.Errorf("Line() at EOF error = %v, want io.EOF", err)
	}
}
