package internal

// Version is the application version, overridden at build time via
// -ldflags "-X codeberg.org/snonux/xltranslate/internal.Version=...".
var Version = "0.2.0"
