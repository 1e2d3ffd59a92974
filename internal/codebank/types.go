package codebank

// Question is the fixed prompt shown with every code problem.
const Question = "What is the output?"

// OptionCount is the number of choices every problem carries.
const OptionCount = 4

// CodeProblem is a multiple-choice "what does this print" problem.
// Problems are immutable once the catalog is loaded.
type CodeProblem struct {
	ID           string
	Language     string // display and highlighting only
	Code         string // never executed
	Question     string
	Options      []string
	CorrectIndex int
}

// catalogFile mirrors the YAML layout of catalog.yaml.
type catalogFile struct {
	Problems []struct {
		ID           string   `yaml:"id"`
		Language     string   `yaml:"language"`
		Code         string   `yaml:"code"`
		Options      []string `yaml:"options"`
		CorrectIndex int      `yaml:"correct_index"`
	} `yaml:"problems"`
}
