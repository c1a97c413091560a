package ui

import "testing"

func TestDetectThemeEnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("GEARSHELF_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatal("GEARSHELF_DARK_MODE=1 should force dark")
	}

	t.Setenv("GEARSHELF_DARK_MODE", "false")
	if DetectTheme().IsDark {
		t.Fatal("GEARSHELF_DARK_MODE=false should force light")
	}
}

func TestDetectThemeColorFgBg(t *testing.T) {
	t.Setenv("GEARSHELF_DARK_MODE", "")

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatal("light background should detect light")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatal("dark background should detect dark")
	}
}

func TestDetectThemeDefaultsDark(t *testing.T) {
	t.Setenv("GEARSHELF_DARK_MODE", "")
	t.Setenv("COLORFGBG", "")
	if !DetectTheme().IsDark {
		t.Fatal("detection should default to dark")
	}
}

func TestThemeNamed(t *testing.T) {
	if ThemeNamed("light").IsDark {
		t.Fatal("named light theme is dark")
	}
	if !ThemeNamed("Dark").IsDark {
		t.Fatal("named dark theme is light")
	}

	t.Setenv("GEARSHELF_DARK_MODE", "1")
	if !ThemeNamed("").IsDark {
		t.Fatal("unnamed theme should fall back to detection")
	}
}

func TestNewStylesCarriesTheme(t *testing.T) {
	st := NewStyles(LightTheme())
	if st.Theme.IsDark {
		t.Fatal("style set lost its theme")
	}
}
