package options

import (
	"testing"
)

func TestGetOption(t *testing.T) {
	opts := []string{"-K", "3", "-G"}
	val, err := GetOption("K", opts)
	if err != nil {
		t.Fatal(err)
	}
	if val != "3" {
		t.Fatal("Option value must be 3")
	}
	if opts[0] != "" || opts[1] != "" {
		t.Fatal("Consumed tokens must be blanked")
	}
	val, err = GetOption("W", opts)
	if err != nil {
		t.Fatal(err)
	}
	if val != "" {
		t.Fatal("Missing option must yield an empty value")
	}
}

func TestGetOptionMissingArg(t *testing.T) {
	_, err := GetOption("K", []string{"-K"})
	if err == nil {
		t.Fatal("Flag at the end of the vector has no argument")
	}
	_, err = GetOption("K", []string{"-K", "-G"})
	if err == nil {
		t.Fatal("Flag followed by another flag has no argument")
	}
}

func TestGetOptionNegativeNumber(t *testing.T) {
	opts := []string{"-S", "-2.5"}
	val, err := GetOption("S", opts)
	if err != nil {
		t.Fatal(err)
	}
	if val != "-2.5" {
		t.Fatal("Negative numbers are valid option arguments")
	}
}

func TestGetFlag(t *testing.T) {
	opts := []string{"-X", "-E"}
	if !GetFlag("X", opts) {
		t.Fatal("Flag -X must be found")
	}
	if GetFlag("X", opts) {
		t.Fatal("Flag -X was already consumed")
	}
	if GetFlag("L", opts) {
		t.Fatal("Flag -L is not present")
	}
}

func TestCheckRemaining(t *testing.T) {
	opts := []string{"-K", "3", "-bogus"}
	GetOption("K", opts)
	if err := CheckRemaining(opts); err == nil {
		t.Fatal("Leftover tokens must be an error")
	}
	if err := CheckRemaining([]string{"", ""}); err != nil {
		t.Fatal(err)
	}
}

func TestSplitJoinOptions(t *testing.T) {
	tokens, err := SplitOptions(`kdtree -L 40`)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 || tokens[0] != "kdtree" {
		t.Fatal("Wrong tokens number after split")
	}
	tokens, err = SplitOptions(`linear "-F some file"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 || tokens[1] != "-F some file" {
		t.Fatal("Quoted token must stay a single token")
	}
	_, err = SplitOptions(`linear "-F broken`)
	if err == nil {
		t.Fatal("Unbalanced quotes must be an error")
	}
	joined := JoinOptions([]string{"linear", "-F some file", ""})
	if joined != `linear "-F some file"` {
		t.Fatalf("Wrong joined option string: %v", joined)
	}
}
