package json

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	sp "github.com/shibukawa/strparse"
)

func parse(t *testing.T, input string) Value {
	t.Helper()
	d := sp.New(New(), sp.WithTrim(true), sp.WithConsumeAll(true))
	res, err := d.Parse(sp.NewContext(), input)
	assert.NoError(t, err)
	return res.Value
}

func TestObjectWithBareAndQuotedKeys(t *testing.T) {
	v := parse(t, `{name: "ok", "count": 3}`)
	assert.Equal(t, KindObject, v.Kind)
	name, ok := v.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "ok", name.Str)
	count, ok := v.Get("count")
	assert.True(t, ok)
	assert.Equal(t, float64(3), count.Num)
}

func TestArrayOfMixedValues(t *testing.T) {
	v := parse(t, `[1, "two", true, null, [3, 4]]`)
	assert.Equal(t, KindArray, v.Kind)
	assert.Equal(t, 5, len(v.Arr))
	assert.Equal(t, float64(1), v.Arr[0].Num)
	assert.Equal(t, "two", v.Arr[1].Str)
	assert.True(t, v.Arr[2].Bool)
	assert.Equal(t, KindNull, v.Arr[3].Kind)
	assert.Equal(t, KindArray, v.Arr[4].Kind)
}

func TestNumericLiteralForms(t *testing.T) {
	assert.Equal(t, float64(255), parse(t, "0xFF").Num)
	assert.Equal(t, float64(5), parse(t, "0b101").Num)
	assert.Equal(t, float64(8), parse(t, "0o10").Num)
	assert.Equal(t, float64(1000000), parse(t, "1_000_000").Num)
	assert.Equal(t, float64(-3.5), parse(t, "-3.5").Num)
	assert.Equal(t, float64(2500), parse(t, "2.5e3").Num)
}

func TestSingleAndDoubleQuotedStrings(t *testing.T) {
	assert.Equal(t, "hi", parse(t, `'hi'`).Str)
	assert.Equal(t, "hi", parse(t, `"hi"`).Str)
	assert.Equal(t, "a\tb\nc", parse(t, `"a\tb\nc"`).Str)
	assert.Equal(t, "é", parse(t, `"é"`).Str)
}

func TestTrailingCommaAllowedInArrayAndObject(t *testing.T) {
	v := parse(t, `[1, 2, 3,]`)
	assert.Equal(t, 3, len(v.Arr))
	obj := parse(t, `{a: 1,}`)
	val, ok := obj.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(1), val.Num)
}

func TestRejectsTrailingGarbage(t *testing.T) {
	d := sp.New(New(), sp.WithTrim(true), sp.WithConsumeAll(true))
	_, err := d.Parse(sp.NewContext(), `{a: 1} garbage`)
	assert.Error(t, err)
}
