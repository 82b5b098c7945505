package idcard_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"idcheck/pkg/idcard"
)

type RegionalSuite struct {
	suite.Suite
}

func TestRegionalSuite(t *testing.T) {
	suite.Run(t, new(RegionalSuite))
}

func (s *RegionalSuite) TestClassifyRegional() {
	cases := map[string]idcard.Shape{
		"A123456789":  idcard.ShapeTaiwan,
		"a123456789":  idcard.ShapeTaiwan,
		"A123456(3)":  idcard.ShapeHongKong,
		"A1234563":    idcard.ShapeHongKong,
		"AB987654(3)": idcard.ShapeHongKong,
		"G123456(A)":  idcard.ShapeHongKong,
		"1234567(8)":  idcard.ShapeMacau,
		"5215299(8)":  idcard.ShapeMacau,
		"7123456B":    idcard.ShapeMacau,
		"":            idcard.ShapeUnrecognized,
		"12345":       idcard.ShapeUnrecognized,
		"2234567(8)":  idcard.ShapeUnrecognized,
		"A123456(B)":  idcard.ShapeUnrecognized,
		"ABC12345(6)": idcard.ShapeUnrecognized,
		"AB12345678":  idcard.ShapeUnrecognized,
	}
	for raw, want := range cases {
		s.Equal(want, idcard.ClassifyRegional(raw), "%q", raw)
	}
}

func (s *RegionalSuite) TestTaiwan() {
	s.Run("valid male", func() {
		res, ok := idcard.ValidateRegional10("A123456789")
		s.Require().True(ok)
		s.Equal(idcard.RegionTaiwan, res.Region)
		s.Equal(idcard.GenderMale, res.Gender)
		s.True(res.Valid())
		s.NoError(res.Err())
	})

	s.Run("valid female", func() {
		res, ok := idcard.ValidateRegional10("B234567894")
		s.Require().True(ok)
		s.Equal(idcard.GenderFemale, res.Gender)
		s.True(res.Valid())
	})

	s.Run("lower-case letter", func() {
		res, ok := idcard.ValidateRegional10("a123456789")
		s.Require().True(ok)
		s.True(res.Valid())
	})

	s.Run("check digit mismatch", func() {
		res, ok := idcard.ValidateRegional10("A123456788")
		s.Require().True(ok)
		s.Equal(idcard.GenderMale, res.Gender)
		s.False(res.Valid())
		s.ErrorIs(res.Err(), idcard.ErrChecksumMismatch)
	})

	s.Run("unknown sex digit short-circuits", func() {
		res, ok := idcard.ValidateRegional10("A323456789")
		s.Require().True(ok)
		s.Equal(idcard.RegionTaiwan, res.Region)
		s.Equal(idcard.GenderUnknown, res.Gender)
		s.Equal(idcard.ChecksumInvalid, res.Checksum)
	})
}

func (s *RegionalSuite) TestHongKong() {
	valid := []string{"A123456(3)", "A1234563", "AB987654(3)", "C123456(9)", "G123456(A)", "g123456(a)"}
	for _, raw := range valid {
		res, ok := idcard.ValidateRegional10(raw)
		s.Require().True(ok, raw)
		s.Equal(idcard.RegionHongKong, res.Region, raw)
		s.Equal(idcard.GenderUnknown, res.Gender, raw)
		s.True(res.Valid(), raw)
	}

	invalid := []string{"A123456(7)", "AB987654(4)", "G123456(0)"}
	for _, raw := range invalid {
		res, ok := idcard.ValidateRegional10(raw)
		s.Require().True(ok, raw)
		s.False(res.Valid(), raw)
	}
}

func (s *RegionalSuite) TestMacau() {
	res, ok := idcard.ValidateRegional10("1234567(8)")
	s.Require().True(ok)
	s.Equal(idcard.RegionMacau, res.Region)
	s.Equal("澳门", res.Region.LocalName())
	s.Equal(idcard.GenderUnknown, res.Gender)
	s.Equal(idcard.ChecksumUnsupported, res.Checksum)
	s.False(res.Valid())
	s.ErrorIs(res.Err(), idcard.ErrUnsupportedRegion)
}

func (s *RegionalSuite) TestUnrecognized() {
	for _, raw := range []string{"", "   ", "()", "11010519491231002X", "ZZZZZZZZZZ"} {
		_, ok := idcard.ValidateRegional10(raw)
		s.False(ok, "%q", raw)
	}

	s.Run("non-ASCII letters do not fold into ASCII", func() {
		// U+017F and U+0131 upper-case to S and I under Unicode rules
		for _, raw := range []string{"ſ123456784", "ı123456789", "ſ123456(4)", "Ａ123456789"} {
			_, ok := idcard.ValidateRegional10(raw)
			s.False(ok, "%q", raw)
			s.Equal(idcard.ShapeUnrecognized, idcard.ClassifyRegional(raw), "%q", raw)
		}
	})

	s.Run("ASCII equivalent is still accepted", func() {
		res, ok := idcard.ValidateRegional10("s123456784")
		s.True(ok)
		s.True(res.Valid())
	})
}

func (s *RegionalSuite) TestHongKongPrefixKnown() {
	s.True(idcard.HongKongPrefixKnown('A'))
	s.True(idcard.HongKongPrefixKnown('z'))
	s.False(idcard.HongKongPrefixKnown('Q'))
	s.True(idcard.IsASCIILetter('g'))
	s.False(idcard.IsASCIILetter('1'))
	s.False(idcard.IsASCIILetter(0xC5))
}

func (s *RegionalSuite) TestNames() {
	s.Equal("Hong Kong", idcard.RegionHongKong.String())
	s.Equal("Unknown", idcard.RegionUnknown.String())
	s.Equal("F", idcard.GenderFemale.String())
	s.Equal("N", idcard.GenderUnknown.String())
	s.Equal("unsupported", idcard.ChecksumUnsupported.String())
	s.Equal(idcard.RegionTaiwan, idcard.ShapeTaiwan.Region())
}
