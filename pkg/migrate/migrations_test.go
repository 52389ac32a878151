package migrate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShippedMigrationsValidate(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}
