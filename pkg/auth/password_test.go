package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !VerifyPassword("Sup3rSecret!", hash) {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() accepted a wrong password")
	}
	if VerifyPassword("Sup3rSecret!", "not-a-bcrypt-hash") {
		t.Error("VerifyPassword() accepted a malformed hash")
	}
}
