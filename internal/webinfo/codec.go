package webinfo

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"alicia-launcher/internal/domain"
)

const recordPrefix = "\t\t"

var ErrMalformedRecord = errors.New("malformed web info record")

// Tags in the order the game reads them.
var recordTags = []string{
	"GameId", "MemberNo", "LoginID", "AuthKey", "InstallUrl",
	"ServerType", "ServerInfo", "Age", "Sex", "Birthday",
	"WardNo", "CityCode", "ZipCode", "PCBangNo", "CloseTime",
}

// Marshal renders info in the pipe-delimited format the game client parses.
func Marshal(info domain.WebInfo) []byte {
	var b strings.Builder
	b.WriteString(recordPrefix)

	field := func(tag, value string) {
		b.WriteByte('|')
		b.WriteString(tag)
		b.WriteByte('=')
		b.WriteString(value)
	}
	uint32Field := func(tag string, value uint32) {
		field(tag, strconv.FormatUint(uint64(value), 10))
	}

	field("GameId", info.GameID)
	field("MemberNo", strconv.FormatUint(info.MemberNo, 10))
	field("LoginID", info.LoginID)
	field("AuthKey", info.AuthKey)
	field("InstallUrl", info.InstallURL)
	uint32Field("ServerType", info.ServerType)
	field("ServerInfo", info.ServerInfo)
	uint32Field("Age", info.Age)
	uint32Field("Sex", uint32(normalizeSex(info.Sex)))
	field("Birthday", info.Birthday)
	uint32Field("WardNo", info.WardNo)
	field("CityCode", fmt.Sprintf("%02d", info.CityCode))
	field("ZipCode", info.ZipCode)
	uint32Field("PCBangNo", info.PCBangNo)
	field("CloseTime", info.CloseTime)

	return []byte(b.String())
}

// Unmarshal reads a record produced by Marshal. Trailing NUL bytes left by a
// page-sized mapping view are ignored.
func Unmarshal(data []byte) (domain.WebInfo, error) {
	var info domain.WebInfo

	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	s, ok := strings.CutPrefix(string(data), recordPrefix+"|")
	if !ok {
		return info, fmt.Errorf("%w: missing record prefix", ErrMalformedRecord)
	}

	// Text fields may not contain '|', so the split is unambiguous.
	segments := strings.Split(s, "|")
	if len(segments) != len(recordTags) {
		return info, fmt.Errorf("%w: expected %d fields, got %d",
			ErrMalformedRecord, len(recordTags), len(segments))
	}

	values := make([]string, len(recordTags))
	for i, segment := range segments {
		tag, value, found := strings.Cut(segment, "=")
		if !found || tag != recordTags[i] {
			return info, fmt.Errorf("%w: expected field %s at position %d, got %q",
				ErrMalformedRecord, recordTags[i], i, segment)
		}
		values[i] = value
	}

	var errs []error
	parseUint32 := func(i int) uint32 {
		v, err := strconv.ParseUint(values[i], 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", recordTags[i], err))
		}
		return uint32(v)
	}

	memberNo, err := strconv.ParseUint(values[1], 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("field MemberNo: %w", err))
	}

	info = domain.WebInfo{
		GameID:     values[0],
		MemberNo:   memberNo,
		LoginID:    values[2],
		AuthKey:    values[3],
		InstallURL: values[4],
		ServerType: parseUint32(5),
		ServerInfo: values[6],
		Age:        parseUint32(7),
		Birthday:   values[9],
		WardNo:     parseUint32(10),
		CityCode:   parseUint32(11),
		ZipCode:    values[12],
		PCBangNo:   parseUint32(13),
		CloseTime:  values[14],
	}

	sex, err := domain.ParseSex(int(parseUint32(8)))
	if err != nil {
		errs = append(errs, err)
	}
	info.Sex = sex

	if len(errs) > 0 {
		return domain.WebInfo{}, fmt.Errorf("%w: %w", ErrMalformedRecord, errors.Join(errs...))
	}

	return info, nil
}

func normalizeSex(s domain.Sex) domain.Sex {
	if !s.Valid() {
		return domain.SexUnspecified
	}
	return s
}
