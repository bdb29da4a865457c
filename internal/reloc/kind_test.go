package reloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	require.Equal(t, "Abs8", KindAbs8.String())
	require.Equal(t, "RiscvPCRelLo12I", KindRiscvPCRelLo12I.String())
	require.Equal(t, "LArchCall36", KindLArchCall36.String())
	require.Contains(t, Kind(0).String(), "Kind(")
}

func TestKind_admitsDirectLibcall(t *testing.T) {
	require.True(t, KindAbs8.admitsDirectLibcall())
	require.True(t, KindX86PCRel8.admitsDirectLibcall())
	require.False(t, KindX86PCRel4.admitsDirectLibcall())
	require.False(t, KindArm64Call.admitsDirectLibcall())
}

func TestTarget_constructors(t *testing.T) {
	require.Equal(t, tagLocalFunction, LocalFunction(3).tag)
	require.Equal(t, uint32(3), LocalFunction(3).localFunction)

	require.Equal(t, tagLibCall, LibCall(7).tag)
	require.Equal(t, LibCallID(7), LibCall(7).libCall)

	require.Equal(t, tagCustomSection, CustomSection(2).tag)
	require.Equal(t, uint32(2), CustomSection(2).customSection)
}
