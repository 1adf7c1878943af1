package console

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("workstation-07\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Client name", &out)
	if err != nil || got != "workstation-07" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Client name", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetSecret("API token", &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSecret_Stubbed(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("t0ken"), nil
	}
	var out bytes.Buffer
	got, err := GetSecret("API token", &out)
	if err != nil || string(got) != "t0ken" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "API token") {
		t.Fatalf("prompt missing: %q", out.String())
	}
}
