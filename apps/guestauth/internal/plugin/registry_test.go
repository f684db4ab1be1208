package plugin

import (
	"errors"
	"testing"

	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
)

type greeter interface {
	Greet() string
}

type namedGreeter string

func (g namedGreeter) Greet() string { return string(g) }

func ctorOf(name string) Constructor[greeter] {
	return func() (greeter, error) { return namedGreeter(name), nil }
}

func newTestRegistry() *Registry[greeter] {
	r := NewRegistry[greeter]("greeter", "Default", ctorOf("default"))
	r.Register("Firewall", ctorOf("firewall"))
	r.Register("broken", func() (greeter, error) { return nil, errors.New("boom") })
	return r
}

func TestRegistryResolve(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name     string
		label    string
		wantName string
		want     string
	}{
		{"exact", "firewall", "firewall", "firewall"},
		{"case insensitive", "FIREWALL", "firewall", "firewall"},
		{"unknown", "xmpp", "default", "default"},
		{"empty", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, ctor := r.Resolve(tt.label)
			if gotName != tt.wantName {
				t.Errorf("Resolve(%q) name = %q, want %q", tt.label, gotName, tt.wantName)
			}
			impl, err := ctor()
			if err != nil {
				t.Fatalf("ctor() error = %v", err)
			}
			if impl.Greet() != tt.want {
				t.Errorf("Greet() = %q, want %q", impl.Greet(), tt.want)
			}
		})
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Get("xmpp")
	if !errors.Is(err, apperr.ErrPluginNotFound) {
		t.Fatalf("Get() error = %v, want ErrPluginNotFound", err)
	}
	var pe *apperr.PluginError
	if !errors.As(err, &pe) || pe.Name != "xmpp" || pe.Kind != "greeter" {
		t.Errorf("PluginError = %+v", pe)
	}
}

func TestRegistryNewFallsBackOnError(t *testing.T) {
	r := newTestRegistry()

	name, impl, err := r.New("broken")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if name != "default" || impl.Greet() != "default" {
		t.Errorf("New() = %q/%q, want default", name, impl.Greet())
	}
}

func TestRegistryNewDefaultFailure(t *testing.T) {
	r := NewRegistry[greeter]("greeter", "default", func() (greeter, error) {
		return nil, errors.New("no socket")
	})

	_, _, err := r.New("default")
	if !errors.Is(err, apperr.ErrPluginInit) {
		t.Errorf("New() error = %v, want ErrPluginInit", err)
	}
}

func TestRegistryNames(t *testing.T) {
	r := newTestRegistry()
	names := r.Names()
	want := []string{"broken", "default", "firewall"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
