// Package species provides a best-effort species-name lookup for
// status-surface display. Species IDs are opaque passthrough bytes as
// far as the trade protocol is concerned (internal Gen I index order,
// not Pokédex numbers); this table exists only so a status snapshot
// can show a human a name instead of a raw byte, and is never
// consulted for protocol correctness.
package species

import "fmt"

// names maps internal Gen I species indices to display names. It is
// intentionally incomplete — unknown or unused indices (including the
// game's own "MissingNo." gaps) fall through to Name's placeholder.
var names = map[uint8]string{
	1:   "Rhydon",
	2:   "Kangaskhan",
	3:   "Nidoran♂",
	4:   "Clefairy",
	5:   "Spearow",
	6:   "Voltorb",
	7:   "Nidoking",
	8:   "Slowbro",
	9:   "Ivysaur",
	10:  "Exeggutor",
	11:  "Lickitung",
	12:  "Exeggcute",
	13:  "Grimer",
	14:  "Gengar",
	15:  "Nidoran♀",
	16:  "Nidoqueen",
	17:  "Cubone",
	18:  "Rhyhorn",
	19:  "Lapras",
	20:  "Arcanine",
	21:  "Mew",
	22:  "Gyarados",
	23:  "Shellder",
	24:  "Tentacool",
	25:  "Gastly",
	26:  "Scyther",
	27:  "Staryu",
	28:  "Blastoise",
	29:  "Pinsir",
	30:  "Tangela",
	33:  "Growlithe",
	34:  "Onix",
	35:  "Fearow",
	36:  "Pidgey",
	37:  "Slowpoke",
	38:  "Kadabra",
	39:  "Graveler",
	40:  "Chansey",
	41:  "Machoke",
	42:  "Mr. Mime",
	43:  "Hitmonlee",
	44:  "Hitmonchan",
	45:  "Arbok",
	46:  "Parasect",
	47:  "Psyduck",
	48:  "Drowzee",
	49:  "Golem",
	51:  "Magmar",
	53:  "Electabuzz",
	54:  "Magneton",
	55:  "Koffing",
	57:  "Mankey",
	58:  "Seel",
	59:  "Diglett",
	60:  "Tauros",
	65:  "Farfetch'd",
	66:  "Venonat",
	67:  "Dragonite",
	71:  "Doduo",
	72:  "Poliwag",
	73:  "Jynx",
	74:  "Moltres",
	75:  "Articuno",
	76:  "Zapdos",
	77:  "Ditto",
	78:  "Meowth",
	79:  "Krabby",
	83:  "Vulpix",
	84:  "Ninetales",
	85:  "Pikachu",
	86:  "Raichu",
	89:  "Dratini",
	90:  "Dragonair",
	91:  "Kabuto",
	92:  "Kabutops",
	93:  "Horsea",
	94:  "Seadra",
	97:  "Sandshrew",
	98:  "Sandslash",
	99:  "Omanyte",
	100: "Omastar",
	101: "Jigglypuff",
	102: "Wigglytuff",
	103: "Eevee",
	104: "Flareon",
	105: "Jolteon",
	106: "Vaporeon",
	107: "Machop",
	108: "Zubat",
	109: "Ekans",
	110: "Paras",
	111: "Poliwhirl",
	112: "Poliwrath",
	113: "Weedle",
	114: "Kakuna",
	115: "Beedrill",
	117: "Dodrio",
	118: "Primeape",
	119: "Dugtrio",
	120: "Venomoth",
	121: "Dewgong",
	124: "Caterpie",
	125: "Metapod",
	126: "Butterfree",
	127: "Machamp",
	129: "Golduck",
	130: "Hypno",
	131: "Golbat",
	132: "Mewtwo",
	133: "Snorlax",
	134: "Magikarp",
	137: "Muk",
	139: "Kingler",
	140: "Cloyster",
	142: "Electrode",
	143: "Clefable",
	144: "Weezing",
	145: "Persian",
	146: "Marowak",
	148: "Haunter",
	149: "Abra",
	150: "Alakazam",
	151: "Pidgeotto",
	152: "Pidgeot",
	153: "Starmie",
	154: "Bulbasaur",
	155: "Venusaur",
	156: "Tentacruel",
	158: "Goldeen",
	159: "Seaking",
	160: "Ponyta",
	161: "Rapidash",
	162: "Rattata",
	163: "Raticate",
	164: "Nidorino",
	165: "Nidorina",
	166: "Geodude",
	167: "Porygon",
	168: "Aerodactyl",
	170: "Magnemite",
	173: "Charmander",
	174: "Squirtle",
	175: "Charmeleon",
	176: "Wartortle",
	177: "Charizard",
}

// Name returns the display name for a Gen I internal species index, or
// a placeholder of the form "Species #N" for any index this table
// doesn't cover.
func Name(id uint8) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("Species #%d", id)
}
