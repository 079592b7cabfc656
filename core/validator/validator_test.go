package validator_test

import (
	"testing"

	"github.com/goto/ticketsearch/core/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type Nested struct {
		Weight float64 `mapstructure:"weight" validate:"gte=0"`
	}
	type DummyStruct struct {
		VarOneOf string `mapstructure:"var_one_of" validate:"omitempty,oneof=type1 type2 type3"`
		VarInt   int    `json:"varint" validate:"omitempty,gte=0"`
		VarMax   int    `mapstructure:"var_max" validate:"lte=10"`
		Nested   Nested `mapstructure:"nested"`
	}

	type TestCase struct {
		Description string
		Struct      interface{}
		ErrString   string
	}

	testCases := []TestCase{
		{
			Description: "return error with supported values in oneof type validation",
			Struct:      DummyStruct{VarOneOf: "random"},
			ErrString:   "error value \"random\" for key \"var_one_of\" not recognized, only support \"type1 type2 type3\"",
		},
		{
			Description: "fall back to json tag for field name",
			Struct:      DummyStruct{VarInt: -1},
			ErrString:   "varint cannot be less than 0",
		},
		{
			Description: "report nested fields with their path",
			Struct:      DummyStruct{Nested: Nested{Weight: -2}},
			ErrString:   "nested.weight cannot be less than 0",
		},
		{
			Description: "join several failures",
			Struct:      DummyStruct{VarInt: -1, VarMax: 11},
			ErrString:   "varint cannot be less than 0 and var_max cannot be greater than 10",
		},
		{
			Description: "valid struct",
			Struct:      DummyStruct{VarOneOf: "type2", VarInt: 3},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			err := validator.ValidateStruct(tc.Struct)
			if tc.ErrString == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.ErrString)
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	type TestCase struct {
		Description string
		Value       string
		Enums       []string
		ErrString   string
	}

	testCases := []TestCase{
		{
			Description: "return error with supported values",
			Value:       "random",
			Enums:       []string{"type1", "type2", "type3"},
			ErrString:   "error value \"random\" not recognized, only support \"type1 type2 type3\"",
		},
		{
			Description: "empty value is accepted",
			Value:       "",
			Enums:       []string{"type1"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			err := validator.ValidateOneOf(tc.Value, tc.Enums...)
			if tc.ErrString == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.ErrString)
		})
	}
}
