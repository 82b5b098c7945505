package idcard_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"

	"idcheck/pkg/idcard"
)

type MainlandSuite struct {
	suite.Suite
}

func TestMainlandSuite(t *testing.T) {
	suite.Run(t, new(MainlandSuite))
}

func (s *MainlandSuite) TestValidateMainland18() {
	s.Run("accepts published example with X check digit", func() {
		s.True(idcard.ValidateMainland18("11010519491231002X"))
	})

	s.Run("accepts lower-case x", func() {
		s.True(idcard.ValidateMainland18("11010519491231002x"))
	})

	s.Run("accepts numeric check digit", func() {
		s.True(idcard.ValidateMainland18("440524188001010014"))
		s.True(idcard.ValidateMainland18("110105194912310011"))
	})

	s.Run("rejects check digit mismatch", func() {
		s.False(idcard.ValidateMainland18("440524188001010015"))
		s.False(idcard.ValidateMainland18("110105194912310020"))
	})

	s.Run("rejects wrong length", func() {
		s.False(idcard.ValidateMainland18(""))
		s.False(idcard.ValidateMainland18("11010519491231002"))
		s.False(idcard.ValidateMainland18("11010519491231002XX"))
	})

	s.Run("rejects non-digits in the first 17 positions", func() {
		s.False(idcard.ValidateMainland18("1101051949123100XX"))
		s.False(idcard.ValidateMainland18("A1010519491231002X"))
	})

	s.Run("does not inspect region or date", func() {
		// region 10 is not in the table and month 13 is not a date, but the
		// checksum is right
		s.True(idcard.ValidateMainland18("100105194912310028"))
		s.True(idcard.ValidateMainland18("110105194913310021"))
	})
}

func (s *MainlandSuite) TestCheckDigit() {
	s.Run("reproduces the last character of valid numbers", func() {
		for _, n := range []string{"11010519491231002X", "440524188001010014", "110105194912310011"} {
			d, err := idcard.CheckDigit(n[:17])
			s.Require().NoError(err)
			s.Equal(n[17], d, n)
		}
	})

	s.Run("rejects malformed prefixes", func() {
		_, err := idcard.CheckDigit("1234")
		s.ErrorIs(err, idcard.ErrInvalidFormat)
		_, err = idcard.CheckDigit("1101051949123100A")
		s.ErrorIs(err, idcard.ErrInvalidFormat)
	})
}

func (s *MainlandSuite) TestParse() {
	s.Run("extracts attributes", func() {
		id, err := idcard.Parse("11010519491231002X")
		s.Require().NoError(err)
		s.Equal("11010519491231002X", id.Number())
		s.Equal("北京", id.Province())
		s.Equal("11", id.ProvinceCode())
		s.Equal(time.Date(1949, 12, 31, 0, 0, 0, 0, time.UTC), id.Birthdate())
		s.False(id.IsMale(), "sequence digit 2 is even")
		s.Equal(idcard.GenderFemale, id.Gender())
	})

	s.Run("odd sequence digit is male", func() {
		id, err := idcard.Parse("110105194912310011")
		s.Require().NoError(err)
		s.True(id.IsMale())
		s.Equal(idcard.GenderMale, id.Gender())
	})

	s.Run("trims whitespace and upper-cases the check digit", func() {
		id, err := idcard.Parse("  11010519491231002x\n")
		s.Require().NoError(err)
		s.Equal("11010519491231002X", id.Number())
	})

	s.Run("accepts nineteenth-century birthdates", func() {
		id, err := idcard.Parse("440524188001010014")
		s.Require().NoError(err)
		s.Equal("广东", id.Province())
		s.Equal(1880, id.Birthdate().Year())
		s.True(id.IsMale())
	})

	s.Run("malformed input is an invalid format", func() {
		for _, raw := range []string{"", "   ", "1101051949", "11010519491231002XX", "440524188001010015"} {
			_, err := idcard.Parse(raw)
			s.ErrorIs(err, idcard.ErrInvalidFormat, "%q", raw)
		}
	})

	s.Run("unknown region code", func() {
		_, err := idcard.Parse("100105194912310028")
		s.ErrorIs(err, idcard.ErrInvalidProvince)
	})

	s.Run("impossible birthdate", func() {
		_, err := idcard.Parse("110105194913310021")
		s.ErrorIs(err, idcard.ErrInvalidDate)
	})
}

func (s *MainlandSuite) TestMustParse() {
	s.Run("panics on invalid number", func() {
		s.Panics(func() { idcard.MustParse("bogus") })
	})

	s.Run("returns identity for valid number", func() {
		s.NotPanics(func() {
			s.False(idcard.MustParse("11010519491231002X").IsZero())
		})
	})
}

func (s *MainlandSuite) TestAge() {
	birth := time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)

	s.Run("birthday later in the year has not been reached", func() {
		s.Equal(23, idcard.AgeAt(birth, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	})

	s.Run("counts the birthday itself", func() {
		s.Equal(24, idcard.AgeAt(birth, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	})

	s.Run("clamps future birthdates to zero", func() {
		s.Equal(0, idcard.AgeAt(birth, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	s.Run("identity derives age from the supplied date", func() {
		id := idcard.MustParse("11010519491231002X")
		s.Equal(74, id.AgeAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
		s.Equal(75, id.AgeAt(time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)))
	})

	s.Run("zero identity has unknown gender", func() {
		var id idcard.Identity
		s.True(id.IsZero())
		s.Equal(idcard.GenderUnknown, id.Gender())
	})
}

func (s *MainlandSuite) TestGenderParity() {
	numbers := []string{"11010519491231002X", "440524188001010014", "110105194912310011"}
	for _, n := range numbers {
		id := idcard.MustParse(n)
		s.Equal((n[16]-'0')%2 == 1, id.IsMale(), n)
	}
}

func (s *MainlandSuite) TestProvinceTable() {
	s.Run("has one entry per provincial-level region", func() {
		s.Len(idcard.Provinces(), 34)
	})

	s.Run("lookup", func() {
		name, ok := idcard.Province("82")
		s.True(ok)
		s.Equal("澳门", name)
		_, ok = idcard.Province("91")
		s.False(ok)
	})

	s.Run("returns a copy", func() {
		p := idcard.Provinces()
		p["11"] = "changed"
		name, _ := idcard.Province("11")
		s.Equal("北京", name)
	})
}

func (s *MainlandSuite) TestMask() {
	s.Equal("1101**********002X", idcard.Mask("11010519491231002X"))
	s.Equal("A123**6789", idcard.Mask("A123456789"))
	s.Equal("****", idcard.Mask("1234"))
	s.Equal("", idcard.Mask(""))

	s.Run("multi-byte input keeps whole characters", func() {
		masked := idcard.Mask("１１０１０５１９４９")
		s.True(utf8.ValidString(masked))
		s.Equal("１１０１**１９４９", masked)
		s.Equal("***", idcard.Mask("北京市"))
	})
}
