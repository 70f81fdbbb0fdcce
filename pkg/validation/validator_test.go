package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" binding:"required,username"`
	Duration string `form:"duration" binding:"required,numeric"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
}

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

func TestFirstUsesTagNamesAndOrder(t *testing.T) {
	err := binding.Validator.ValidateStruct(&sample{Duration: "x", Date: "2024-13-40"})
	fe := First(err)
	require.Equal(t, "username", fe.Field)
	require.Equal(t, "username is required", fe.Message)

	err = binding.Validator.ValidateStruct(&sample{Username: "alice", Duration: "x", Date: "2024-01-01"})
	fe = First(err)
	require.Equal(t, "duration", fe.Field)
	require.Equal(t, "duration must be numeric", fe.Message)

	err = binding.Validator.ValidateStruct(&sample{Username: "alice", Duration: "30", Date: "2024-13-40"})
	require.Equal(t, "date must be a valid date (YYYY-MM-DD)", First(err).Message)

	err = binding.Validator.ValidateStruct(&sample{Username: strings.Repeat("a", 65), Duration: "30", Date: "2024-01-01"})
	require.Equal(t, "username must be 1-64 printable characters", First(err).Message)

	require.NoError(t, binding.Validator.ValidateStruct(&sample{Username: "alice", Duration: "30.5", Date: "2024-01-01"}))
}

func TestFirstJSONErrors(t *testing.T) {
	var v struct {
		Duration float64 `json:"duration"`
	}
	err := json.Unmarshal([]byte(`{"duration":"abc"}`), &v)
	require.Equal(t, "duration has an invalid type", First(err).Message)

	err = json.Unmarshal([]byte(`{`), &v)
	require.Equal(t, "invalid json", First(err).Message)
}

func TestFirstPassThrough(t *testing.T) {
	require.Nil(t, First(nil))

	own := NewError("from", "must be a valid date (YYYY-MM-DD)")
	require.Same(t, own, First(own))

	fe := First(errors.New("boom"))
	require.Equal(t, "payload", fe.Field)
	require.Equal(t, "invalid payload", fe.Message)
}
