package factory

import (
	"strings"
	"testing"
)

type provider struct {
	BaseURL string
	Timeout int
}

type providerConf struct {
	BaseURL string `json:"base_url"`
	Timeout int    `json:"timeout_seconds"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*provider]()
	if err := reg.Register("nominatim", func(conf map[string]any) (*provider, error) {
		var c providerConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &provider{BaseURL: c.BaseURL, Timeout: c.Timeout}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "Nominatim", Conf: map[string]any{
		"base_url":        "http://geo.local",
		"timeout_seconds": "5",
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.BaseURL != "http://geo.local" || inst.Timeout != 5 {
		t.Fatalf("unexpected instance %#v", inst)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	_, err := reg.Create(ModuleConfig{Type: "z"})
	if err == nil {
		t.Fatal("expected unknown type error")
	}
	if !strings.Contains(err.Error(), "known: x") {
		t.Fatalf("error should list known types: %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"static", "nominatim"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	got := reg.Names()
	if len(got) != 2 || got[0] != "nominatim" || got[1] != "static" {
		t.Fatalf("unexpected names %v", got)
	}
}
