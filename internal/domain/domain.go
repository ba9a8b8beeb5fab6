package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidSex = errors.New("invalid sex value")

// Sex is the closed set of values the game accepts for the Sex field.
type Sex uint32

const (
	SexUnspecified Sex = iota
	SexFemale
	SexMale
)

// ParseSex converts a raw integer into a Sex, rejecting anything outside the three known values.
func ParseSex(v int) (Sex, error) {
	if v < int(SexUnspecified) || v > int(SexMale) {
		return SexUnspecified, fmt.Errorf("%w: %d", ErrInvalidSex, v)
	}
	return Sex(v), nil
}

func (s Sex) Valid() bool {
	switch s {
	case SexUnspecified, SexFemale, SexMale:
		return true
	default:
		return false
	}
}

func (s Sex) String() string {
	switch s {
	case SexUnspecified:
		return "unspecified"
	case SexFemale:
		return "female"
	case SexMale:
		return "male"
	default:
		return fmt.Sprintf("Sex(%d)", uint32(s))
	}
}

// WebInfo is the session record handed from the launcher to the game client.
type WebInfo struct {
	GameID     string
	MemberNo   uint64
	LoginID    string
	AuthKey    string
	InstallURL string
	ServerType uint32
	ServerInfo string
	Age        uint32
	Sex        Sex
	Birthday   string
	WardNo     uint32
	CityCode   uint32
	ZipCode    string
	PCBangNo   uint32
	CloseTime  string
}

// Credentials are the login pair carried from the launch URL to the launcher.
type Credentials struct {
	LoginID string
	AuthKey string
}

func (c Credentials) Empty() bool {
	return c.LoginID == "" && c.AuthKey == ""
}
