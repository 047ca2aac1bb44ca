package construct

import (
	"crypto/md5" // #nosec G501 -- identifier hashing, not security
	"encoding/hex"
	"strings"
)

const (
	hashLength      = 8
	maxLogicalIDLen = 255

	// hiddenID is dropped from paths entirely.
	hiddenID = "Default"

	// hiddenFromHumanID is hashed but left out of the readable prefix.
	hiddenFromHumanID = "Resource"
)

// logicalID derives a template key from the node's path below its stack.
func logicalID(components []string) string {
	visible := make([]string, 0, len(components))
	for _, c := range components {
		if c != hiddenID {
			visible = append(visible, c)
		}
	}

	if len(visible) == 1 {
		return removeNonAlphanumeric(visible[0])
	}

	var human strings.Builder
	prev := ""
	for i, c := range visible {
		if c == hiddenFromHumanID || (i > 0 && c == prev) {
			prev = c
			continue
		}
		prev = c
		human.WriteString(removeNonAlphanumeric(c))
	}

	sum := md5.Sum([]byte(strings.Join(visible, PathSeparator))) // #nosec G401
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))[:hashLength]

	prefix := human.String()
	if len(prefix)+hashLength > maxLogicalIDLen {
		prefix = prefix[:maxLogicalIDLen-hashLength]
	}
	return prefix + hash
}

func removeNonAlphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
