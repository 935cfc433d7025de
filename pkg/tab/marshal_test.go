package tab_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-tab/pkg/tab"
)

type person struct {
	Name string `tab:"NAME"`
	Age  int    `tab:"AGE"`
	note string // unexported, ignored
}

func TestMarshal(t *testing.T) {
	people := []person{
		{Name: "Alice", Age: 30},
		{Name: "Bob", Age: 7},
	}

	out, err := tab.Marshal(people)
	require.NoError(t, err)

	// Headers sort alphabetically: AGE before NAME.
	require.Equal(t, "AGE NAME  \n30  Alice \n7   Bob   \n", string(out))
}

func TestMarshalQuotedValues(t *testing.T) {
	type row struct {
		Msg string `tab:"MSG"`
	}
	out, err := tab.Marshal([]row{{Msg: "hello world"}})
	require.NoError(t, err)
	require.Equal(t, "MSG           \n\"hello world\" \n", string(out))
}

func TestMarshalOmitEmpty(t *testing.T) {
	type row struct {
		A string `tab:"A,omitempty"`
		B int    `tab:"B"`
	}
	out, err := tab.Marshal([]row{{A: "", B: 0}})
	require.NoError(t, err)
	require.Equal(t, "A  B \n\"\" 0 \n", string(out))
}

func TestMarshalSkipTag(t *testing.T) {
	type row struct {
		Keep string `tab:"KEEP"`
		Drop string `tab:"-"`
	}
	out, err := tab.Marshal([]row{{Keep: "x", Drop: "y"}})
	require.NoError(t, err)
	require.Equal(t, "KEEP \nx    \n", string(out))
}

func TestMarshalErrors(t *testing.T) {
	_, err := tab.Marshal(42)
	require.ErrorIs(t, err, tab.ErrNotSlice)

	_, err = tab.Marshal(nil)
	require.ErrorIs(t, err, tab.ErrNotSlice)

	_, err = tab.Marshal([]int{1})
	require.ErrorIs(t, err, tab.ErrNotSlice)
}

func TestMarshalEmptySlice(t *testing.T) {
	out, err := tab.Marshal([]person{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarshalPointerElements(t *testing.T) {
	out, err := tab.Marshal([]*person{{Name: "Alice", Age: 30}, nil})
	require.NoError(t, err)
	require.Equal(t, "AGE NAME  \n30  Alice \n", string(out))
}

func TestUnmarshalStructs(t *testing.T) {
	data := []byte("AGE NAME  \n30  Alice \n7   Bob   \n")

	var people []person
	require.NoError(t, tab.Unmarshal(data, &people))
	require.Equal(t, []person{
		{Name: "Alice", Age: 30},
		{Name: "Bob", Age: 7},
	}, people)
}

func TestUnmarshalRawRecords(t *testing.T) {
	data := []byte("A B \n1 2 \n")

	var records [][]string
	require.NoError(t, tab.Unmarshal(data, &records))
	require.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, records)
}

func TestUnmarshalMissingColumnKeepsZeroValue(t *testing.T) {
	data := []byte("NAME \nAlice \n")

	var people []person
	require.NoError(t, tab.Unmarshal(data, &people))
	require.Equal(t, []person{{Name: "Alice", Age: 0}}, people)
}

func TestUnmarshalQuotedValues(t *testing.T) {
	type row struct {
		Msg string `tab:"MSG"`
	}
	data := []byte("MSG           \n\"hello world\" \n")

	var rows []row
	require.NoError(t, tab.Unmarshal(data, &rows))
	require.Equal(t, "hello world", rows[0].Msg)
}

func TestUnmarshalConverterTag(t *testing.T) {
	type event struct {
		Name string    `tab:"NAME"`
		Day  time.Time `tab:"DAY,convert=date"`
	}
	data := []byte("DAY        NAME \n2026-08-31 ship \n")

	var events []event
	require.NoError(t, tab.Unmarshal(data, &events))
	require.Equal(t, "ship", events[0].Name)
	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), events[0].Day)
}

func TestUnmarshalPointerFields(t *testing.T) {
	type row struct {
		N *int `tab:"N"`
	}
	data := []byte("N  \n5  \n\"\" \n")

	var rows []row
	require.NoError(t, tab.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].N)
	require.Equal(t, 5, *rows[0].N)
	require.Nil(t, rows[1].N)
}

func TestUnmarshalErrors(t *testing.T) {
	var people []person
	require.ErrorIs(t, tab.Unmarshal([]byte("NAME\n"), people), tab.ErrNotPointer)

	var n int
	require.ErrorIs(t, tab.Unmarshal([]byte("NAME\n"), &n), tab.ErrNotPointer)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := []person{
		{Name: "Alice Smith", Age: 30},
		{Name: "Bob", Age: 7},
	}
	data, err := tab.Marshal(in)
	require.NoError(t, err)

	var out []person
	require.NoError(t, tab.Unmarshal(data, &out))
	require.Equal(t, in, out)
}
