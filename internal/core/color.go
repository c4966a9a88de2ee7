package core

// Color says what a screen cell shows rather than which hue it has. The
// platform picks a terminal color for each value.
type Color uint8

const (
	ColorDefault Color = iota
	ColorStone
	ColorLava
	ColorWater
	ColorGoo
	ColorPlate
	ColorPlatePressed
	ColorGate
	ColorMagma // Magma Boy, his door and his HUD text
	ColorHydro // Hydro Girl, her door and her HUD text
	ColorNotice
	ColorFaint
)
