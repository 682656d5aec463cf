package naming

import (
	"fmt"
	"testing"
)

func Example() {
	fmt.Println(Underscore.Convert("userName"))
	fmt.Println(Underscore.Convert("createdTime"))
	fmt.Println(Underscore.Convert("id"))
	fmt.Println(Underscore.Convert("URLPath"))
	fmt.Println(Underscore.Convert(Property("CreatedTime")))
	fmt.Println(Underscore.Convert(Property("UserID")))

	// Output:
	// user_name
	// created_time
	// id
	// u_r_l_path
	// created_time
	// user_id
}

func TestUnderscore(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "", expected: ""},
		{name: "   ", expected: "   "},
		{name: "id", expected: "id"},
		{name: "userName", expected: "user_name"},
		{name: "UserName", expected: "user_name"},
		{name: "URLPath", expected: "u_r_l_path"},
		{name: "createdTime", expected: "created_time"},
		{name: "a1B2", expected: "a1_b2"},
		{name: "already_snake", expected: "already_snake"},
		{name: "éÉ", expected: "é_é"},
	}

	for _, tt := range tests {
		if want, got := tt.expected, Underscore.Convert(tt.name); want != got {
			t.Errorf("%q: want=%q got=%q", tt.name, want, got)
		}
	}
}

func TestLower(t *testing.T) {
	if want, got := "createdtime", Lower.Convert("createdTime"); want != got {
		t.Errorf("want=%q got=%q", want, got)
	}
}

func TestProperty(t *testing.T) {
	tests := []struct {
		fieldName string
		expected  string
	}{
		{fieldName: "", expected: ""},
		{fieldName: "Name", expected: "name"},
		{fieldName: "CreatedTime", expected: "createdTime"},
		{fieldName: "ID", expected: "id"},
		{fieldName: "X", expected: "x"},
		{fieldName: "URLPath", expected: "urlPath"},
		{fieldName: "UserID", expected: "userId"},
		{fieldName: "HTTPServerURL", expected: "httpServerUrl"},
		{fieldName: "A1B2", expected: "a1B2"},
		{fieldName: "IDNumber", expected: "idNumber"},
		{fieldName: "URL", expected: "url"},
		{fieldName: "already", expected: "already"},
	}

	for _, tt := range tests {
		if want, got := tt.expected, Property(tt.fieldName); want != got {
			t.Errorf("%q: want=%q got=%q", tt.fieldName, want, got)
		}
	}
}
