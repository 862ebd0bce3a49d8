package game

import "testing"

// TestGetWeaponFallback verifies unknown keys degrade to the pistol
func TestGetWeaponFallback(t *testing.T) {
	w := GetWeapon("does_not_exist")
	if w.Key != "pistol" {
		t.Errorf("Expected pistol fallback, got %q", w.Key)
	}
	if w := GetWeapon(""); w.Key != "pistol" {
		t.Errorf("Expected pistol fallback for empty key, got %q", w.Key)
	}
}

// TestCatalogIntegrity checks every entry is internally consistent
func TestCatalogIntegrity(t *testing.T) {
	for key, w := range Weapons {
		if w.Key != key {
			t.Errorf("%s: Key field %q does not match map key", key, w.Key)
		}
		if w.FireRate <= 0 {
			t.Errorf("%s: FireRate must be positive", key)
		}
		if w.Pellets < 1 {
			t.Errorf("%s: Pellets must be at least 1", key)
		}
		if w.Penetration < 1 {
			t.Errorf("%s: Penetration must be at least 1", key)
		}
		if w.Kind != KindMelee && w.MagSize <= 0 {
			t.Errorf("%s: gun with empty magazine", key)
		}
		if w.Explosive && w.BlastRadius <= 0 {
			t.Errorf("%s: explosive without blast radius", key)
		}
	}
}

// TestRarityTableMatchesCatalog verifies every rollable key exists and
// the stable ordering covers the whole rarity table
func TestRarityTableMatchesCatalog(t *testing.T) {
	if len(rarityKeys) != len(weaponRarity) {
		t.Fatalf("rarityKeys has %d entries, weaponRarity has %d", len(rarityKeys), len(weaponRarity))
	}
	for _, k := range rarityKeys {
		if _, ok := Weapons[k]; !ok {
			t.Errorf("rarity key %q not in catalog", k)
		}
		if weaponRarity[k] <= 0 {
			t.Errorf("rarity key %q has no weight", k)
		}
	}
}

// TestRollWeaponKey checks boundary rolls land on real weapons
func TestRollWeaponKey(t *testing.T) {
	for _, roll := range []float64{0, 0.25, 0.5, 0.75, 0.9999} {
		key := rollWeaponKey(roll)
		if _, ok := Weapons[key]; !ok {
			t.Errorf("roll %.4f produced unknown weapon %q", roll, key)
		}
	}
	if key := rollWeaponKey(0); key != "glock" {
		t.Errorf("roll 0 should hit the most common weapon, got %q", key)
	}
}

// TestSpecialEffectsAssigned verifies the elemental weapons carry
// their on-hit effects
func TestSpecialEffectsAssigned(t *testing.T) {
	tests := []struct {
		key    string
		effect SpecialEffect
	}{
		{"flamethrower", EffectBurn},
		{"freeze_ray", EffectFreeze},
		{"tranq_pistol", EffectFreeze},
		{"electric_gun", EffectChain},
		{"rifle", EffectNone},
	}
	for _, tt := range tests {
		if got := GetWeapon(tt.key).Special; got != tt.effect {
			t.Errorf("%s: expected effect %d, got %d", tt.key, tt.effect, got)
		}
	}
}
