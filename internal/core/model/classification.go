package model

import "fmt"

// Classification is the fixed taxonomy for analyzed legacy source files.
// It is independent of the oracle's free-text suggested classification;
// the two are never cross-validated.
type Classification string

const (
	ClassificationScreen        Classification = "Screen"
	ClassificationDataModel     Classification = "DataModel"
	ClassificationAPI           Classification = "API"
	ClassificationBusinessLogic Classification = "BusinessLogic"
	ClassificationDatabase      Classification = "Database"
	ClassificationJobControl    Classification = "JobControl"
)

var classifications = map[Classification]bool{
	ClassificationScreen:        true,
	ClassificationDataModel:     true,
	ClassificationAPI:           true,
	ClassificationBusinessLogic: true,
	ClassificationDatabase:      true,
	ClassificationJobControl:    true,
}

// Valid reports whether c is one of the six known classifications.
func (c Classification) Valid() bool {
	return classifications[c]
}

func (c Classification) String() string {
	return string(c)
}

// ParseClassification converts a string into a Classification, rejecting
// anything outside the fixed set.
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown classification %q", s)
	}
	return c, nil
}
