package network

// DefaultNames are the replacement names a [Listener] draws from when an
// update renames a record.
var DefaultNames = []string{
	"Loyd Pellegrino",
	"Deangelo Nilsson",
	"Talitha Martines",
	"Lela Oppenheimer",
	"Cheyenne Bartlett",
	"Yesenia Stenson",
	"Daniel Lovelace",
	"Laura Pircalaboiu",
	"Robbin Baauw",
	"Dany Sluijk",
	"Jonathan Donszelmann",
	"Victor Roest",
	"Ricardo Vogel",
	"Julius de Jeu",
	"Kristi Hambleton",
	"Benedict Nemec",
	"Margrett Shortt",
	"Juli Tames",
	"Jacquelyne Vandeventer",
	"Sanda Kean",
	"Sean Lard",
	"Milda Zambrano",
	"Ema Hessling",
	"Shante Gamon",
	"Cristine Blanford",
	"Melvina Lilly",
	"Rosena Carlon",
	"Angelyn Crocker",
	"Kitty Truesdale",
	"Lauralee Tweed",
	"Kristie Bogue",
	"Mayola Rumble",
	"Harriet Landa",
	"Gerard Glascock",
	"Richelle Mizer",
	"Tess Mohney",
	"Ryann Ragan",
	"Maude Hinesley",
	"Steven Sones",
	"Danielle Storms",
	"Gwen Leon",
	"Johnny Sova",
	"Larue Villegas",
	"Francene Behrendt",
	"Lili Armes",
	"Jong Weston",
	"Sabina Baldonado",
	"Genna Denis",
	"Olga Salas",
	"Twana Topps",
	"Patrica Toal",
	"Evelia Willms",
	"Barbra Slattery",
	"Marlo Kabel",
	"Laticia Geddie",
	"Na Perino",
	"Cordie Debose",
}
