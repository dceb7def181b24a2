package solana

var (
	SystemProgramID = mustParsePubkey("11111111111111111111111111111111")

	// The loaders: every program that installs executable code on-chain.
	// A transaction carrying an instruction addressed to any of these is a
	// deployment (or upgrade) of some program.
	BPFLoaderDeprecatedID  = mustParsePubkey("BPFLoader1111111111111111111111111111111111")
	BPFLoader2ID           = mustParsePubkey("BPFLoader2111111111111111111111111111111111")
	BPFLoaderUpgradeableID = mustParsePubkey("BPFLoaderUpgradeab1e11111111111111111111111")
	LoaderV4ID             = mustParsePubkey("LoaderV411111111111111111111111111111111111")
)

func mustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// LoaderIDs returns the loader program identifiers, deprecated first.
func LoaderIDs() []Pubkey {
	return []Pubkey{
		BPFLoaderDeprecatedID,
		BPFLoader2ID,
		BPFLoaderUpgradeableID,
		LoaderV4ID,
	}
}

func IsLoader(pk Pubkey) bool {
	switch pk {
	case BPFLoaderDeprecatedID, BPFLoader2ID, BPFLoaderUpgradeableID, LoaderV4ID:
		return true
	}
	return false
}
