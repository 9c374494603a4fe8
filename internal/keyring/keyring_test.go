package keyring

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// testStore runs the shared suite against a Store.
func testStore(t *testing.T, s Store) {
	t.Helper()

	t.Run("SetAndGet", func(t *testing.T) {
		if err := s.Set("main", "alice", []byte("phrase one")); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		got, err := s.Get("main", "alice")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(got, []byte("phrase one")) {
			t.Errorf("Get() = %q", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		s.Set("main", "bob", []byte("first"))
		s.Set("main", "bob", []byte("second"))
		got, err := s.Get("main", "bob")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get() = %q, want %q", got, "second")
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get("main", "nobody")
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Has", func(t *testing.T) {
		ok, err := s.Has("main", "alice")
		if err != nil || !ok {
			t.Errorf("Has(alice) = %v, %v", ok, err)
		}
		ok, err = s.Has("main", "nobody")
		if err != nil || ok {
			t.Errorf("Has(nobody) = %v, %v", ok, err)
		}
	})

	t.Run("List", func(t *testing.T) {
		s.Set("other", "zed", []byte("z"))
		s.Set("mainnet", "carol", []byte("c"))

		names, err := s.List("main")
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if want := []string{"alice", "bob"}; !reflect.DeepEqual(names, want) {
			t.Errorf("List(main) = %v, want %v", names, want)
		}

		wallets, err := s.ListWallets()
		if err != nil {
			t.Fatalf("ListWallets() error: %v", err)
		}
		if want := []string{"main", "mainnet", "other"}; !reflect.DeepEqual(wallets, want) {
			t.Errorf("ListWallets() = %v, want %v", wallets, want)
		}
	})

	t.Run("ListMissingWallet", func(t *testing.T) {
		_, err := s.List("ghost")
		if !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("List() error = %v, want ErrWalletNotFound", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.Delete("other", "zed"); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		if _, err := s.Get("other", "zed"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Get() after Delete error = %v", err)
		}
		if err := s.Delete("other", "zed"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("second Delete() error = %v, want ErrKeyNotFound", err)
		}
		if _, err := s.List("other"); !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("List() of emptied wallet error = %v", err)
		}
	})

	t.Run("InvalidNames", func(t *testing.T) {
		for _, tc := range [][2]string{{"", "a"}, {"w", ""}, {"a/b", "c"}, {"w", "x/y"}} {
			if err := s.Set(tc[0], tc[1], []byte("v")); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Set(%q, %q) error = %v, want ErrInvalidName", tc[0], tc[1], err)
			}
		}
	})
}

func TestMemoryKeyring(t *testing.T) {
	kr := NewMemory([]byte("pw"), fastParams())
	defer kr.Close()
	testStore(t, kr)
}

func TestBadgerKeyring(t *testing.T) {
	kr, err := NewBadger(t.TempDir(), []byte("pw"), fastParams())
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	defer kr.Close()
	testStore(t, kr)
}

func TestBadgerKeyring_Persistence(t *testing.T) {
	dir := t.TempDir()

	kr, err := NewBadger(dir, []byte("pw"), fastParams())
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	if err := kr.Set("main", "alice", []byte("phrase")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	kr.Close()

	kr, err = NewBadger(dir, []byte("pw"), fastParams())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := kr.Get("main", "alice")
	kr.Close()
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if string(got) != "phrase" {
		t.Errorf("Get() = %q", got)
	}

	kr, err = NewBadger(dir, []byte("wrong"), fastParams())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer kr.Close()
	if _, err := kr.Get("main", "alice"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Get() with wrong password error = %v, want ErrWrongPassword", err)
	}
}

func TestKeyring_StoresCiphertext(t *testing.T) {
	kr := NewMemory([]byte("pw"), fastParams())
	secret := []byte("never in the clear")
	if err := kr.Set("w", "k", secret); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	raw, err := kr.db.get([]byte("w/w/k"))
	if err != nil {
		t.Fatalf("raw get error: %v", err)
	}
	if bytes.Contains(raw, secret) {
		t.Error("backend holds plaintext")
	}
}

func TestKeyring_CloseZeroesPassword(t *testing.T) {
	pw := []byte("pw")
	kr := NewMemory(pw, fastParams())
	kr.Close()
	if !bytes.Equal(kr.password, []byte{0, 0}) {
		t.Error("password not zeroed")
	}
	if string(pw) != "pw" {
		t.Error("caller's password was modified")
	}
}
