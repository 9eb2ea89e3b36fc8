package asl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDefinition(t *testing.T, js string) *Definition {
	t.Helper()
	var d Definition
	require.NoError(t, json.Unmarshal([]byte(js), &d))
	return &d
}

func TestValidateAcceptsPipeline(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{
			"A":{"Type":"Pass","Result":{"x":1},"Next":"B"},
			"B":{"Type":"Pass","Result":{"y":2},"End":true}
		}
	}`)
	assert.NoError(t, Validate(d))
}

func TestValidateRejectsMissingStartAt(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"Missing",
		"States":{"A":{"Type":"Pass","End":true}}
	}`)
	err := Validate(d)
	require.Error(t, err)
	var defErr *DefinitionError
	assert.ErrorAs(t, err, &defErr)
}

func TestValidateRejectsDanglingNext(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{"A":{"Type":"Pass","Next":"Nowhere"}}
	}`)
	assert.Error(t, Validate(d))
}

func TestValidateRejectsUnknownType(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{"A":{"Type":"Bogus","End":true}}
	}`)
	assert.Error(t, Validate(d))
}

func TestValidateRejectsDanglingChoiceNext(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{"A":{"Type":"Choice","Choices":[{"Variable":"$.n","NumericLessThan":10,"Next":"Ghost"}]}}
	}`)
	assert.Error(t, Validate(d))
}

func TestValidateRecursesIntoMapIterator(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{"A":{"Type":"Map","ItemsPath":"$.items","Iterator":{
			"StartAt":"Inner","States":{"Inner":{"Type":"Pass","Next":"Ghost"}}
		},"End":true}}
	}`)
	assert.Error(t, Validate(d))
}

func TestValidateRecursesIntoParallelBranches(t *testing.T) {
	d := parseDefinition(t, `{
		"StartAt":"A",
		"States":{"A":{"Type":"Parallel","Branches":[
			{"StartAt":"B1","States":{"B1":{"Type":"Pass","End":true}}},
			{"StartAt":"B2","States":{"B2":{"Type":"Pass","Next":"Ghost"}}}
		],"End":true}}
	}`)
	assert.Error(t, Validate(d))
}

func TestErrorEqualsMatchesWildcard(t *testing.T) {
	assert.True(t, ErrorEqualsMatch([]string{ErrorEqualsAll}, "HostError"))
	assert.True(t, ErrorEqualsMatch([]string{"HostError"}, "HostError"))
	assert.False(t, ErrorEqualsMatch([]string{"PathError"}, "HostError"))
}
