package database

import "github.com/ardnew/santa/lang"

// defaultRecords is the naughty-or-nice list loaded by [Default], as
// (id, name, isnaughty) triples.
var defaultRecords = []struct {
	id      int64
	name    string
	naughty bool
}{
	{0, "Timmy Chang", true},
	{1, "Vernie Goodale", false},
	{2, "Siu Oneil", true},
	{3, "Leah Dunstan", true},
	{4, "Kenny Maynard", false},
	{5, "Chrystal Krieger", false},
	{6, "Elisha Waldrep", false},
	{7, "Lanell Biro", false},
	{8, "Annett Duhe", true},
	{9, "Marilu Lesane", false},
	{10, "Ilene Montealegre", true},
	{11, "Prudence Helbing", false},
	{12, "Lorri Dalman", false},
	{13, "Liz Manley", false},
	{14, "Bea Sund", false},
	{15, "Jerica Jeffreys", false},
	{16, "Jose Robert", false},
	{17, "Lashawn Adams", false},
	{18, "Jerri Soucie", true},
	{19, "Lazaro Baynes", false},
	{20, "Camellia Netzer", false},
	{21, "Pasquale Hiner", false},
	{22, "Mikel Carron", false},
	{23, "Hank Dragon", false},
	{24, "Nickolas Hamann", false},
	{25, "Deshawn Santistevan", true},
	{26, "Jalisa Moose", false},
	{27, "Angelena Flett", false},
	{28, "Tommie Strand", true},
	{29, "Leonel Creger", false},
	{30, "Barbar Opie", false},
	{31, "Charita Boatman", false},
	{32, "Marlen Delgado", true},
	{33, "Shane Betters", false},
	{34, "Patrica Mccallie", false},
	{35, "Greg Hollie", false},
	{36, "Willa Roa", false},
	{37, "Ora Spadaro", false},
	{38, "Holley Mcdonalds", true},
	{39, "Jana Leonetti", false},
	{40, "Cole Zoll", false},
	{41, "Jenniffer Fazzino", false},
	{42, "Tim Anema", true},
	{43, "Dominique Pinnell", false},
	{44, "Lori Moeckel", false},
	{45, "Elida Carvalho", false},
	{46, "Cortez Gertsch", false},
	{47, "Marc Dunkle", false},
	{48, "Maple Linsley", false},
	{49, "Birdie Pence", false},
	{50, "Patty Antilla", true},
	{51, "Ethan Bowdoin", false},
}

// Default returns a database holding the "list" table, selected as current,
// with columns id, name and isnaughty.
func Default() *Database {
	db := New()

	list := NewTable("list", "id", "name", "isnaughty")
	for _, r := range defaultRecords {
		// Width always matches the column list.
		_ = list.AddRecord(lang.Integer(r.id), lang.String(r.name), lang.Boolean(r.naughty))
	}

	db.AddTable(list)
	_ = db.SetCurrent(list.Name)

	return db
}
