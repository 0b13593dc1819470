package dataset

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-metawizard/pkg/session"
)

// columnStats narrows a column type as cells arrive and keeps bounds for
// every candidate type still possible.
type columnStats struct {
	count   int
	missing bool

	isInt, isFloat, isBool bool

	minNum, maxNum decimal.Decimal
	minStr, maxStr string
	sawTrue        bool
	sawFalse       bool
}

func newColumnStats() *columnStats {
	return &columnStats{isInt: true, isFloat: true, isBool: true}
}

func (c *columnStats) observeMissing() {
	c.missing = true
}

func (c *columnStats) observe(cell string) {
	first := c.count == 0
	c.count++

	if first || cell < c.minStr {
		c.minStr = cell
	}
	if first || cell > c.maxStr {
		c.maxStr = cell
	}

	if c.isInt {
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			c.isInt = false
		}
	}
	if c.isFloat {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			c.isFloat = false
		} else if d, err := decimal.NewFromString(cell); err == nil {
			c.observeNumber(d, first)
		} else {
			c.observeNumber(decimal.NewFromFloat(f), first)
		}
	}
	if c.isBool {
		switch cell {
		case "True", "TRUE", "true":
			c.sawTrue = true
		case "False", "FALSE", "false":
			c.sawFalse = true
		default:
			c.isBool = false
		}
	}
}

func (c *columnStats) observeNumber(d decimal.Decimal, first bool) {
	if first || d.LessThan(c.minNum) {
		c.minNum = d
	}
	if first || d.GreaterThan(c.maxNum) {
		c.maxNum = d
	}
}

func (c *columnStats) dtype() string {
	switch {
	case c.count == 0:
		return TypeFloat
	case c.isInt && !c.missing:
		return TypeInt
	case c.isFloat:
		return TypeFloat
	case c.isBool && !c.missing:
		return TypeBool
	default:
		return TypeObject
	}
}

func (c *columnStats) metadata(name string) session.Metadata {
	meta := session.Metadata{Name: name, Type: c.dtype()}
	if c.count == 0 {
		return meta
	}
	switch meta.Type {
	case TypeInt, TypeFloat:
		meta.Min, meta.Max = c.minNum, c.maxNum
	case TypeBool:
		meta.Min, meta.Max = !c.sawFalse, c.sawTrue
	default:
		meta.Min, meta.Max = c.minStr, c.maxStr
	}
	return meta
}
