package config

import (
	"encoding/json"
	"fmt"

	"alicia-launcher/internal/domain"
)

// WebInfoContent is the webInfoContent block of the settings file.
type WebInfoContent struct {
	domain.WebInfo
}

type webInfoContentJSON struct {
	GameID     string `json:"GameId"`
	MemberNo   uint64 `json:"MemberNo"`
	LoginID    string `json:"LoginId"`
	AuthKey    string `json:"AuthKey"`
	InstallURL string `json:"InstallUrl"`
	ServerType uint32 `json:"ServerType"`
	ServerInfo string `json:"ServerInfo"`
	Age        uint32 `json:"Age"`
	Sex        int    `json:"Sex"`
	Birthday   string `json:"Birthday"`
	WardNo     uint32 `json:"WardNo"`
	CityCode   uint32 `json:"CityCode"`
	ZipCode    string `json:"ZipCode"`
	PCBangNo   uint32 `json:"PcBangNo"`
	CloseTime  string `json:"CloseTime"`
}

func (w *WebInfoContent) UnmarshalJSON(data []byte) error {
	var raw webInfoContentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal web info content: %w", err)
	}

	sex, err := domain.ParseSex(raw.Sex)
	if err != nil {
		return fmt.Errorf("invalid web info content: %w", err)
	}

	w.WebInfo = domain.WebInfo{
		GameID:     raw.GameID,
		MemberNo:   raw.MemberNo,
		LoginID:    raw.LoginID,
		AuthKey:    raw.AuthKey,
		InstallURL: raw.InstallURL,
		ServerType: raw.ServerType,
		ServerInfo: raw.ServerInfo,
		Age:        raw.Age,
		Sex:        sex,
		Birthday:   raw.Birthday,
		WardNo:     raw.WardNo,
		CityCode:   raw.CityCode,
		ZipCode:    raw.ZipCode,
		PCBangNo:   raw.PCBangNo,
		CloseTime:  raw.CloseTime,
	}

	return nil
}

func (w WebInfoContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(webInfoContentJSON{
		GameID:     w.GameID,
		MemberNo:   w.MemberNo,
		LoginID:    w.LoginID,
		AuthKey:    w.AuthKey,
		InstallURL: w.InstallURL,
		ServerType: w.ServerType,
		ServerInfo: w.ServerInfo,
		Age:        w.Age,
		Sex:        int(w.Sex),
		Birthday:   w.Birthday,
		WardNo:     w.WardNo,
		CityCode:   w.CityCode,
		ZipCode:    w.ZipCode,
		PCBangNo:   w.PCBangNo,
		CloseTime:  w.CloseTime,
	})
}

// Ensure required interfaces are implemented
var (
	_ json.Unmarshaler = (*WebInfoContent)(nil)
	_ json.Marshaler   = WebInfoContent{}
)
