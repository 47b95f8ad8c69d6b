package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDangerous_When_DestructiveCommand(t *testing.T) {
	t.Parallel()

	dangerous := []string{
		"rm -rf /",
		"rm -fr ~/projects",
		"rm -r build",
		"sudo rm /etc/passwd",
		"mkfs.ext4 /dev/sda1",
		"fsck /dev/sda",
		"dd if=/dev/zero of=/dev/sda",
		"cat data.img > /dev/sda",
		"mv important.txt /dev/null",
		"chmod -R 777 /",
		"chown root:root /",
		":(){ :|:& };:",
		"shutdown -h now",
		"sudo reboot",
		"RM -RF /tmp",
	}

	for _, cmd := range dangerous {
		assert.True(t, IsDangerous(cmd), "expected dangerous: %q", cmd)
	}
}

func TestIsDangerous_When_SafeCommand(t *testing.T) {
	t.Parallel()

	safe := []string{
		"ls -la",
		"git status",
		"df -h",
		"du -sh .",
		"echo hello",
		"rm notes.txt",
		"grep -rn TODO .",
	}

	for _, cmd := range safe {
		assert.False(t, IsDangerous(cmd), "expected safe: %q", cmd)
	}
}

func TestMerge_ClampsModelLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Merge("ls", 0).FinalLevel)
	assert.Equal(t, 1, Merge("ls", -3).FinalLevel)
	assert.Equal(t, 5, Merge("ls", 9).FinalLevel)
	assert.Equal(t, 3, Merge("ls", 3).FinalLevel)
}

func TestMerge_IsMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for lvl := 1; lvl <= 5; lvl++ {
		final := Merge("ls -la", lvl).FinalLevel
		assert.GreaterOrEqual(t, final, prev)
		prev = final
	}
}

func TestMerge_PatternMatchPinsToMax(t *testing.T) {
	t.Parallel()

	for lvl := 1; lvl <= 5; lvl++ {
		v := Merge("dd if=/dev/zero of=/dev/sda", lvl)
		assert.True(t, v.PatternFlag)
		assert.Equal(t, MaxLevel, v.FinalLevel, "model level %d", lvl)
	}
}

func TestVerdict_Blocked(t *testing.T) {
	t.Parallel()

	assert.False(t, Merge("ls", 1).Blocked())
	assert.False(t, Merge("ls", 3).Blocked())
	assert.True(t, Merge("ls", 4).Blocked())
	assert.True(t, Merge("ls", 5).Blocked())
	assert.True(t, Merge("rm -rf /", 1).Blocked())
}
