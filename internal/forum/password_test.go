package forum

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	hasher := &PasswordHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("alicepw")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash == "alicepw" {
		t.Fatal("Hash() returned the original password")
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "alicepw", want: true},
		{name: "wrong password", password: "bobpw", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.Verify(tt.password, hash); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}
