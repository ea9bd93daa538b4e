package core

var avatarPalette = []string{"bg-[#0277BD]", "bg-[#00897B]", "bg-[#00ACC1]", "bg-[#0288D1]", "bg-[#00796B]"}

// GenerateAvatar picks the avatar colour token for a display name.
func GenerateAvatar(name string) string {
	return avatarPalette[len([]rune(name))%len(avatarPalette)]
}
