package crypto

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// CharacterClass is one of the fixed alphabets a password may draw from.
type CharacterClass int

const (
	Lowercase CharacterClass = iota
	Uppercase
	Digit
	Special
)

// AllClasses lists every class in pool order.
var AllClasses = []CharacterClass{Lowercase, Uppercase, Digit, Special}

// Alphabet returns the ordered characters belonging to c.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Digit:
		return numberChars
	case Special:
		return symbolChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	}
	return "unknown"
}

// Selection records which character classes are enabled.
type Selection struct {
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Symbols   bool
}

// Has reports whether c is enabled.
func (s Selection) Has(c CharacterClass) bool {
	switch c {
	case Lowercase:
		return s.Lowercase
	case Uppercase:
		return s.Uppercase
	case Digit:
		return s.Numbers
	case Special:
		return s.Symbols
	}
	return false
}

// Classes returns the enabled classes in pool order.
func (s Selection) Classes() []CharacterClass {
	var classes []CharacterClass
	for _, c := range AllClasses {
		if s.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Count returns the number of enabled classes.
func (s Selection) Count() int {
	return len(s.Classes())
}

// MinLength is the shortest password that can hold one character of every
// enabled class. It is never below 1.
func MinLength(s Selection) int {
	return max(1, s.Count())
}

// BuildPool concatenates the alphabets of the enabled classes.
func BuildPool(s Selection) string {
	var pool string
	for _, c := range s.Classes() {
		pool += c.Alphabet()
	}
	return pool
}
