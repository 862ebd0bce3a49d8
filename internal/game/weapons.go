package game

// WeaponKind classifies a weapon's handling family. Kind is set
// explicitly per catalog entry; nothing is derived from the key.
type WeaponKind uint8

const (
	KindPistol WeaponKind = iota
	KindRifle
	KindSniper
	KindShotgun
	KindSMG
	KindLauncher
	KindMinigun
	KindMelee
	KindTool
	KindExotic
)

// String returns the human-readable kind name
func (k WeaponKind) String() string {
	switch k {
	case KindPistol:
		return "pistol"
	case KindRifle:
		return "rifle"
	case KindSniper:
		return "sniper"
	case KindShotgun:
		return "shotgun"
	case KindSMG:
		return "smg"
	case KindLauncher:
		return "launcher"
	case KindMinigun:
		return "minigun"
	case KindMelee:
		return "melee"
	case KindTool:
		return "tool"
	default:
		return "exotic"
	}
}

// SpecialEffect is an on-hit status a weapon applies to zombies
type SpecialEffect uint8

const (
	EffectNone SpecialEffect = iota
	EffectBurn                // damage over time, refreshes on reapply
	EffectFreeze              // halves movement speed
	EffectChain               // arcs to the nearest other zombie
)

// Weapon is a static catalog entry. Damage is per pellet; shotguns
// multiply via Pellets. Speed is projectile speed in units/second.
type Weapon struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Kind        WeaponKind    `json:"kind"`
	Damage      float64       `json:"damage"`
	FireRate    float64       `json:"fireRate"` // shots per second
	ReloadTime  float64       `json:"reloadTime"`
	MagSize     int           `json:"magSize"`
	ReserveAmmo int           `json:"reserveAmmo"`
	Speed       float64       `json:"speed"`
	Range       float64       `json:"range"`  // max travel distance
	Spread      float64       `json:"spread"` // degrees, half-cone
	Pellets     int           `json:"pellets"`
	Recoil      float64       `json:"recoil"` // degrees added per shot
	Penetration int           `json:"penetration"`
	Explosive   bool          `json:"explosive"`
	BlastRadius float64       `json:"blastRadius"`
	Knockback   float64       `json:"knockback"`
	Special     SpecialEffect `json:"special"`
}

// Weapons is the full catalog, keyed by weapon key
var Weapons = map[string]Weapon{
	"pistol": {
		Key: "pistol", Name: "Pistol", Kind: KindPistol,
		Damage: 35, FireRate: 2.5, ReloadTime: 2.1, MagSize: 7, ReserveAmmo: 49,
		Speed: 1500, Range: 700, Spread: 2.5, Pellets: 1, Recoil: 2.5,
		Penetration: 1, Knockback: 30,
	},
	"glock": {
		Key: "glock", Name: "Glock 17", Kind: KindPistol,
		Damage: 25, FireRate: 3.5, ReloadTime: 1.8, MagSize: 17, ReserveAmmo: 85,
		Speed: 1500, Range: 650, Spread: 3.0, Pellets: 1, Recoil: 2.0,
		Penetration: 1, Knockback: 25,
	},
	"rifle": {
		Key: "rifle", Name: "Assault Rifle", Kind: KindRifle,
		Damage: 40, FireRate: 12.5, ReloadTime: 2.5, MagSize: 30, ReserveAmmo: 150,
		Speed: 2100, Range: 900, Spread: 1.5, Pellets: 1, Recoil: 1.2,
		Penetration: 2, Knockback: 35,
	},
	"ak47": {
		Key: "ak47", Name: "AK-47", Kind: KindRifle,
		Damage: 48, FireRate: 10, ReloadTime: 2.8, MagSize: 30, ReserveAmmo: 120,
		Speed: 1950, Range: 850, Spread: 3.5, Pellets: 1, Recoil: 2.0,
		Penetration: 1, Knockback: 45,
	},
	"sniper": {
		Key: "sniper", Name: "Sniper Rifle", Kind: KindSniper,
		Damage: 200, FireRate: 0.5, ReloadTime: 4.0, MagSize: 10, ReserveAmmo: 30,
		Speed: 3000, Range: 1500, Spread: 0.3, Pellets: 1, Recoil: 5.0,
		Penetration: 3, Knockback: 120,
	},
	"svd": {
		Key: "svd", Name: "SVD Dragunov", Kind: KindSniper,
		Damage: 90, FireRate: 1.0, ReloadTime: 3.0, MagSize: 10, ReserveAmmo: 50,
		Speed: 2700, Range: 1200, Spread: 1.0, Pellets: 1, Recoil: 3.0,
		Penetration: 2, Knockback: 80,
	},
	"shotgun": {
		Key: "shotgun", Name: "Shotgun", Kind: KindShotgun,
		Damage: 18, FireRate: 1.0, ReloadTime: 0.5, MagSize: 8, ReserveAmmo: 32,
		Speed: 1320, Range: 350, Spread: 12, Pellets: 8, Recoil: 6.0,
		Penetration: 1, Knockback: 60,
	},
	"spas12": {
		Key: "spas12", Name: "SPAS-12", Kind: KindShotgun,
		Damage: 15, FireRate: 2.5, ReloadTime: 3.5, MagSize: 8, ReserveAmmo: 40,
		Speed: 1320, Range: 400, Spread: 10, Pellets: 9, Recoil: 5.0,
		Penetration: 1, Knockback: 55,
	},
	"smg": {
		Key: "smg", Name: "SMG", Kind: KindSMG,
		Damage: 22, FireRate: 13.3, ReloadTime: 2.0, MagSize: 30, ReserveAmmo: 180,
		Speed: 1680, Range: 600, Spread: 5.0, Pellets: 1, Recoil: 1.5,
		Penetration: 1, Knockback: 20,
	},
	"p90": {
		Key: "p90", Name: "P90", Kind: KindSMG,
		Damage: 20, FireRate: 15, ReloadTime: 2.3, MagSize: 50, ReserveAmmo: 200,
		Speed: 1740, Range: 650, Spread: 4.0, Pellets: 1, Recoil: 1.2,
		Penetration: 2, Knockback: 20,
	},
	"rpg": {
		Key: "rpg", Name: "RPG", Kind: KindLauncher,
		Damage: 150, FireRate: 0.3, ReloadTime: 5.0, MagSize: 1, ReserveAmmo: 8,
		Speed: 900, Range: 1000, Spread: 1.0, Pellets: 1, Recoil: 8.0,
		Penetration: 1, Explosive: true, BlastRadius: 120, Knockback: 150,
	},
	"grenade_launcher": {
		Key: "grenade_launcher", Name: "Grenade Launcher", Kind: KindLauncher,
		Damage: 100, FireRate: 1.5, ReloadTime: 4.5, MagSize: 6, ReserveAmmo: 24,
		Speed: 840, Range: 800, Spread: 2.0, Pellets: 1, Recoil: 6.0,
		Penetration: 1, Explosive: true, BlastRadius: 90, Knockback: 120,
	},
	"minigun": {
		Key: "minigun", Name: "Minigun", Kind: KindMinigun,
		Damage: 30, FireRate: 50, ReloadTime: 6.0, MagSize: 200, ReserveAmmo: 600,
		Speed: 1980, Range: 800, Spread: 6.0, Pellets: 1, Recoil: 0.8,
		Penetration: 2, Knockback: 30,
	},
	"nail_gun": {
		Key: "nail_gun", Name: "Nail Gun", Kind: KindTool,
		Damage: 12, FireRate: 6.0, ReloadTime: 1.5, MagSize: 50, ReserveAmmo: 250,
		Speed: 1560, Range: 500, Spread: 4.0, Pellets: 1, Recoil: 1.0,
		Penetration: 1, Knockback: 10,
	},
	"tranq_pistol": {
		Key: "tranq_pistol", Name: "Tranquilizer Pistol", Kind: KindPistol,
		Damage: 18, FireRate: 1.5, ReloadTime: 2.0, MagSize: 8, ReserveAmmo: 40,
		Speed: 1620, Range: 600, Spread: 2.0, Pellets: 1, Recoil: 1.5,
		Penetration: 1, Knockback: 15, Special: EffectFreeze,
	},
	"deagle": {
		Key: "deagle", Name: "Desert Eagle", Kind: KindPistol,
		Damage: 55, FireRate: 1.8, ReloadTime: 2.3, MagSize: 7, ReserveAmmo: 35,
		Speed: 1800, Range: 750, Spread: 2.0, Pellets: 1, Recoil: 4.0,
		Penetration: 2, Knockback: 70,
	},
	"knife": {
		Key: "knife", Name: "Combat Knife", Kind: KindMelee,
		Damage: 9999, FireRate: 2.0, ReloadTime: 0, MagSize: 999, ReserveAmmo: 0,
		Speed: 0, Range: 50, Spread: 0, Pellets: 1, Recoil: 0,
		Penetration: 1, Knockback: 40,
	},
	"flamethrower": {
		Key: "flamethrower", Name: "Flamethrower", Kind: KindExotic,
		Damage: 8, FireRate: 30, ReloadTime: 4.0, MagSize: 100, ReserveAmmo: 300,
		Speed: 720, Range: 250, Spread: 8.0, Pellets: 1, Recoil: 0.2,
		Penetration: 1, Knockback: 5, Special: EffectBurn,
	},
	"laser_gun": {
		Key: "laser_gun", Name: "Laser Gun", Kind: KindExotic,
		Damage: 45, FireRate: 4.0, ReloadTime: 3.0, MagSize: 20, ReserveAmmo: 80,
		Speed: 3600, Range: 1100, Spread: 0.5, Pellets: 1, Recoil: 1.0,
		Penetration: 5, Knockback: 25,
	},
	"crossbow": {
		Key: "crossbow", Name: "Crossbow", Kind: KindSniper,
		Damage: 120, FireRate: 0.8, ReloadTime: 2.5, MagSize: 1, ReserveAmmo: 30,
		Speed: 2400, Range: 1000, Spread: 0.8, Pellets: 1, Recoil: 4.0,
		Penetration: 2, Knockback: 90,
	},
	"electric_gun": {
		Key: "electric_gun", Name: "Arc Projector", Kind: KindExotic,
		Damage: 35, FireRate: 2.0, ReloadTime: 3.5, MagSize: 15, ReserveAmmo: 60,
		Speed: 1560, Range: 500, Spread: 3.0, Pellets: 1, Recoil: 2.0,
		Penetration: 1, Knockback: 30, Special: EffectChain,
	},
	"freeze_ray": {
		Key: "freeze_ray", Name: "Freeze Ray", Kind: KindExotic,
		Damage: 15, FireRate: 8.0, ReloadTime: 3.0, MagSize: 40, ReserveAmmo: 120,
		Speed: 1080, Range: 400, Spread: 6.0, Pellets: 1, Recoil: 0.5,
		Penetration: 1, Knockback: 10, Special: EffectFreeze,
	},
	"dual_pistols": {
		Key: "dual_pistols", Name: "Dual Pistols", Kind: KindPistol,
		Damage: 22, FireRate: 8.0, ReloadTime: 2.8, MagSize: 34, ReserveAmmo: 170,
		Speed: 1500, Range: 650, Spread: 4.0, Pellets: 1, Recoil: 3.0,
		Penetration: 1, Knockback: 20,
	},
	"throwing_knives": {
		Key: "throwing_knives", Name: "Throwing Knives", Kind: KindExotic,
		Damage: 65, FireRate: 3.0, ReloadTime: 1.5, MagSize: 6, ReserveAmmo: 30,
		Speed: 1320, Range: 550, Spread: 3.0, Pellets: 1, Recoil: 2.0,
		Penetration: 1, Knockback: 50,
	},
}

// weaponRarity weights weapon-crate rolls. Heavier = more common.
var weaponRarity = map[string]int{
	"glock":            10,
	"smg":              10,
	"nail_gun":         8,
	"dual_pistols":     8,
	"ak47":             7,
	"rifle":            7,
	"shotgun":          7,
	"tranq_pistol":     6,
	"throwing_knives":  6,
	"spas12":           5,
	"p90":              5,
	"svd":              5,
	"deagle":           5,
	"crossbow":         4,
	"sniper":           3,
	"flamethrower":     3,
	"freeze_ray":       3,
	"electric_gun":     3,
	"laser_gun":        2,
	"minigun":          2,
	"grenade_launcher": 2,
	"rpg":              1,
}

// rarityKeys is a stable ordering so weighted rolls are deterministic
// for a given RNG state (map iteration order is not)
var rarityKeys = []string{
	"glock", "smg", "nail_gun", "dual_pistols", "ak47", "rifle", "shotgun",
	"tranq_pistol", "throwing_knives", "spas12", "p90", "svd", "deagle",
	"crossbow", "sniper", "flamethrower", "freeze_ray", "electric_gun",
	"laser_gun", "minigun", "grenade_launcher", "rpg",
}

// GetWeapon returns a weapon by key, defaults to the pistol.
// Unknown keys are a soft failure: the caller always gets a usable weapon.
func GetWeapon(key string) Weapon {
	if w, ok := Weapons[key]; ok {
		return w
	}
	return Weapons["pistol"]
}

// GetAllWeapons returns all weapons as a slice
func GetAllWeapons() []Weapon {
	weapons := make([]Weapon, 0, len(Weapons))
	for _, w := range Weapons {
		weapons = append(weapons, w)
	}
	return weapons
}

// rollWeaponKey picks a random catalog key using the rarity weights.
// roll must be in [0, 1).
func rollWeaponKey(roll float64) string {
	total := 0
	for _, k := range rarityKeys {
		total += weaponRarity[k]
	}
	target := int(roll * float64(total))
	for _, k := range rarityKeys {
		target -= weaponRarity[k]
		if target < 0 {
			return k
		}
	}
	return "glock"
}
