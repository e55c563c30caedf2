package constants

import (
	"os"
	"strconv"
)

// Unlimited mirrors matcher.Unlimited for env defaults.
const Unlimited = -1

const DefaultChunkGroups = 32

const DefaultListenAddr = ":8080"

func getIntEnv(name string, fallback int) int {
	val := os.Getenv(name)
	if val == "" {
		return fallback
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		panic(name + " environment variable is not a number: " + err.Error())
	}
	return num
}

// GetMaxGapSize reads MIDIALIGN_MAX_GAP, unlimited when unset.
func GetMaxGapSize() int {
	return getIntEnv("MIDIALIGN_MAX_GAP", Unlimited)
}

// GetMaxUnmatched reads MIDIALIGN_MAX_UNMATCHED, unlimited when unset.
func GetMaxUnmatched() int {
	return getIntEnv("MIDIALIGN_MAX_UNMATCHED", Unlimited)
}

func GetListenAddr() string {
	addr := os.Getenv("MIDIALIGN_ADDR")
	if addr != "" {
		return addr
	}
	return DefaultListenAddr
}
