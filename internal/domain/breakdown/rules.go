package breakdown

// Subject is a broad subject area of an event.
type Subject string

// Subjects in report order.
const (
	Biology      Subject = "Biology"
	ChemInquiry  Subject = "Chemistry & Inquiry"
	EarthScience Subject = "Earth Science"
	MathPhysics  Subject = "Math & Physics"
	Build        Subject = "Build"
)

// Strategy groups events across subjects by how they are competed.
type Strategy string

// Strategies in report order.
const (
	BioCheatsheet     Strategy = "Bio w/ Cheatsheet"
	Identification    Strategy = "ID"
	Lab               Strategy = "Lab"
	EarthCalculations Strategy = "Earth Sci w/ Calculations"
	EarthCheatsheet   Strategy = "Earth Sci w/ Cheatsheet"
	MathNoCheatsheet  Strategy = "Math w/o Cheatsheet"
	MathBuild         Strategy = "Math w/ Build"
	Inquiry           Strategy = "Inquiry"
	ImpoundedBuild    Strategy = "Impounded Build"
	NonImpoundedBuild Strategy = "Non-Impounded Build"
)

// SubjectOrder is the fixed category order of the subject chart.
var SubjectOrder = []Subject{Biology, ChemInquiry, EarthScience, MathPhysics, Build}

// StrategyOrder is the fixed category order of the strategy chart.
var StrategyOrder = []Strategy{
	BioCheatsheet, Identification, Lab, EarthCalculations, EarthCheatsheet,
	MathNoCheatsheet, MathBuild, Inquiry, ImpoundedBuild, NonImpoundedBuild,
}

// Rule maps a keyword found in an event cell to its categories.
type Rule struct {
	Keyword  string
	Subject  Subject
	Strategy Strategy
}

// DefaultRules is evaluated top to bottom; the first keyword contained in
// the lower-cased cell wins.
var DefaultRules = []Rule{
	{"trajectory", Build, ImpoundedBuild},
	{"anatomy", Biology, BioCheatsheet},
	{"astronomy", EarthScience, EarthCalculations},
	{"chemistry", ChemInquiry, Lab},
	{"codebusters", MathPhysics, MathNoCheatsheet},
	{"detector", MathPhysics, MathBuild},
	{"disease", Biology, BioCheatsheet},
	{"dynamic", EarthScience, EarthCheatsheet},
	{"ecology", Biology, BioCheatsheet},
	{"experimental", ChemInquiry, Inquiry},
	{"fermi", ChemInquiry, MathNoCheatsheet},
	{"flight", Build, NonImpoundedBuild},
	{"forensics", ChemInquiry, Lab},
	{"forestry", Biology, Identification},
	{"fossils", EarthScience, Identification},
	{"geologic", EarthScience, EarthCalculations},
	{"microbe", Biology, BioCheatsheet},
	{"optics", MathPhysics, MathBuild},
	{"robot", Build, ImpoundedBuild},
	{"scrambler", Build, ImpoundedBuild},
	{"tower", Build, NonImpoundedBuild},
	{"wind", MathPhysics, MathBuild},
	{"write", ChemInquiry, Inquiry},
}
