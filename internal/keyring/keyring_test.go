package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionString_RoundTrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://app@localhost:5432/ascend?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString: %v", err)
	}
	if got != connStr {
		t.Errorf("got %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestSetConnectionString_RejectsEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("empty connection string should be rejected")
	}
}

func TestDeleteConnectionString_NothingStored(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveConnectionString_EnvWins(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://keyring@localhost/ascend"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConnectionString, "postgres://env@localhost/ascend")

	got, err := ResolveConnectionString()
	if err != nil {
		t.Fatalf("ResolveConnectionString: %v", err)
	}
	if got != "postgres://env@localhost/ascend" {
		t.Errorf("got %q, environment should take precedence", got)
	}
}

func TestResolveConnectionString_FallsBackToKeyring(t *testing.T) {
	gokeyring.MockInit()

	t.Setenv(EnvConnectionString, "")
	if err := SetConnectionString("postgres://keyring@localhost/ascend"); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveConnectionString()
	if err != nil {
		t.Fatalf("ResolveConnectionString: %v", err)
	}
	if got != "postgres://keyring@localhost/ascend" {
		t.Errorf("got %q", got)
	}
}

func TestIsAvailable_MockKeyring(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
