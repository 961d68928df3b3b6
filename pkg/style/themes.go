package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette, as adaptive pairs so light and dark terminals both stay
// readable.
var (
	SecondaryColor = lipgloss.AdaptiveColor{
		Light: "#64748B", // Slate
		Dark:  "#94A3B8",
	}

	// Status colors
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#16A34A", // Green
		Dark:  "#4ADE80",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC2626", // Red
		Dark:  "#F87171",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#CA8A04", // Yellow
		Dark:  "#FACC15",
	}

	InfoColor = lipgloss.AdaptiveColor{
		Light: "#0891B2", // Cyan
		Dark:  "#22D3EE",
	}

	// Text colors
	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#0F172A", // Near black
		Dark:  "#F1F5F9", // Near white
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6B7280", // Gray
		Dark:  "#9CA3AF",
	}
)

// Domain colors
var (
	// LinkColor marks symlinks created by bootstrap
	LinkColor = lipgloss.AdaptiveColor{
		Light: "#0284C7", // Sky blue
		Dark:  "#38BDF8",
	}

	// VersionColor marks generated site versions
	VersionColor = lipgloss.AdaptiveColor{
		Light: "#D97706", // Amber
		Dark:  "#FBBF24",
	}
)
