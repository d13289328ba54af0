package levels

import "fmt"

var builtinMaps = []struct {
	id, name string
	rows     []string
}{
	{"keep", "Keep", []string{
		"#.#.#..#.#.#",
		"############",
		"############",
		"############",
		"############",
	}},
	{"twin-towers", "Twin Towers", []string{
		"#.#......#.#",
		"###......###",
		"###......###",
		"###.####.###",
		"############",
		"############",
	}},
	{"gatehouse", "Gatehouse", []string{
		"#.#.#..#.#.#",
		"############",
		"####....####",
		"####....####",
		"############",
	}},
	{"banners", "Banners", []string{
		"1.2.3..3.2.1",
		"1#2#3##3#2#1",
		"############",
		"############",
		"############",
	}},
	{"citadel", "Citadel", []string{
		".....##.....",
		"....####....",
		"...######...",
		"..########..",
		".##########.",
		"############",
	}},
	{"curtain-wall", "Curtain Wall", []string{
		"#.#.#.#.#.#.",
		"############",
		"............",
		"#.#.#.#.#.#.",
		"############",
		"............",
		"############",
	}},
	{"motte", "Motte and Bailey", []string{
		"....#.#.....",
		"....###.....",
		"....###.....",
		"..#######...",
		".#########..",
		"############",
	}},
	{"royal", "Royal Palace", []string{
		"7.7.7..7.7.7",
		"777777777777",
		"7##########7",
		"7#33####33#7",
		"7##########7",
		"777777777777",
	}},
	{"ruins", "Ruins", []string{
		"#...#.#...#.",
		"##..###..##.",
		"###.####.###",
		"##.#####.###",
		"############",
	}},
	{"fortress", "Fortress", []string{
		"9.9.9..9.9.9",
		"999999999999",
		"9##########9",
		"9#1#1##1#1#9",
		"9##########9",
		"9##########9",
		"999999999999",
	}},
}

// BuiltinLevels returns all built-in castles in play order.
func BuiltinLevels() []Level {
	out := make([]Level, 0, len(builtinMaps))
	for _, m := range builtinMaps {
		lvl, err := ParseLevel(m.id, m.name, m.rows)
		if err != nil {
			panic(fmt.Sprintf("levels: bad builtin %s: %v", m.id, err))
		}
		out = append(out, lvl)
	}
	return out
}

// LevelCount returns the number of built-in levels.
func LevelCount() int {
	return len(builtinMaps)
}
