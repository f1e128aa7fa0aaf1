// Package session resolves which web app a command acts on from its flags and
// the configured defaults.
package session

import (
	"fmt"
	"strings"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

// Resolve fills empty fields of flags from defaults and splits a slot off the
// app name. Names can carry a slot as "app/slot" or "app(slot)". Missing
// values stay empty.
func Resolve(flags domain.SiteTarget, defaults config.DefaultsConfig) (domain.SiteTarget, error) {
	target := domain.SiteTarget{
		ResourceGroup: firstNonEmpty(flags.ResourceGroup, defaults.ResourceGroup),
		Name:          flags.Name,
		Slot:          flags.Slot,
	}

	if target.Name == "" {
		target.Name = defaults.Name
		if target.Slot == "" {
			target.Slot = defaults.Slot
		}
	}

	name, slot, ok := SplitAppAndSlot(target.Name)
	if ok {
		if target.Slot != "" && !strings.EqualFold(target.Slot, slot) {
			return domain.SiteTarget{}, fmt.Errorf("slot %q conflicts with slot %q in app name %q", target.Slot, slot, target.Name)
		}
		target.Name = name
		target.Slot = slot
	}

	if strings.EqualFold(target.Slot, "production") {
		target.Slot = ""
	}

	return target, nil
}

// SplitAppAndSlot recognises "app/slot" and "app(slot)".
func SplitAppAndSlot(fullName string) (name, slot string, ok bool) {
	if i := strings.Index(fullName, "/"); i > 0 && i < len(fullName)-1 {
		return fullName[:i], fullName[i+1:], true
	}

	if strings.HasSuffix(fullName, ")") {
		if i := strings.Index(fullName, "("); i > 0 && i < len(fullName)-2 {
			return fullName[:i], fullName[i+1 : len(fullName)-1], true
		}
	}

	return fullName, "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
