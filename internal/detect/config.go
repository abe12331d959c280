package detect

// Config carries the keyword lists and rule weights injected into the bank
// at construction. Lists are configuration data, not compiled-in literals,
// so deployments can update tool names without a code change; the defaults
// below serve when no overrides are configured.
type Config struct {
	// AITools are generative-AI tool names matched case-insensitively as
	// substrings of software, creator-tool, encoder, and application fields.
	AITools []string `toml:"ai_tools"`
	// KnownEncoders is the legitimate-editor allowlist for the video
	// unknown-encoder heuristic.
	KnownEncoders []string `toml:"known_encoders"`

	SoftwareMatchWeight  int `toml:"software_match_weight"`
	UnknownEncoderWeight int `toml:"unknown_encoder_weight"`
	FrameRateWeight      int `toml:"frame_rate_weight"`
	UnusualRateWeight    int `toml:"unusual_rate_weight"`
	HighBitRateWeight    int `toml:"high_bit_rate_weight"`
	NoCameraWeight       int `toml:"no_camera_weight"`
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.AITools != nil {
		c.AITools = overlay.AITools
	}
	if overlay.KnownEncoders != nil {
		c.KnownEncoders = overlay.KnownEncoders
	}
	mergeWeight(&c.SoftwareMatchWeight, overlay.SoftwareMatchWeight)
	mergeWeight(&c.UnknownEncoderWeight, overlay.UnknownEncoderWeight)
	mergeWeight(&c.FrameRateWeight, overlay.FrameRateWeight)
	mergeWeight(&c.UnusualRateWeight, overlay.UnusualRateWeight)
	mergeWeight(&c.HighBitRateWeight, overlay.HighBitRateWeight)
	mergeWeight(&c.NoCameraWeight, overlay.NoCameraWeight)
}

// Finalize fills unset fields from the defaults.
func (c *Config) Finalize() {
	if len(c.AITools) == 0 {
		c.AITools = defaultAITools
	}
	if len(c.KnownEncoders) == 0 {
		c.KnownEncoders = defaultKnownEncoders
	}
	if c.SoftwareMatchWeight == 0 {
		c.SoftwareMatchWeight = 80
	}
	if c.UnknownEncoderWeight == 0 {
		c.UnknownEncoderWeight = 15
	}
	if c.FrameRateWeight == 0 {
		c.FrameRateWeight = 20
	}
	if c.UnusualRateWeight == 0 {
		c.UnusualRateWeight = 10
	}
	if c.HighBitRateWeight == 0 {
		c.HighBitRateWeight = 10
	}
	if c.NoCameraWeight == 0 {
		c.NoCameraWeight = 10
	}
}

func mergeWeight(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

var defaultAITools = []string{
	"midjourney",
	"stable diffusion",
	"stablediffusion",
	"dall-e",
	"dall·e",
	"dalle",
	"adobe firefly",
	"firefly",
	"leonardo.ai",
	"leonardo ai",
	"ideogram",
	"flux",
	"comfyui",
	"automatic1111",
	"invokeai",
	"novelai",
	"craiyon",
	"dreamstudio",
	"nightcafe",
	"artbreeder",
	"runway",
	"pika labs",
	"kling",
	"sora",
	"synthesia",
	"heygen",
	"deepfacelab",
	"faceswap",
	"wav2lip",
	"gemini",
	"imagen",
	"grok",
}

var defaultKnownEncoders = []string{
	"lavf",
	"lavc",
	"ffmpeg",
	"handbrake",
	"x264",
	"x265",
	"libx264",
	"libx265",
	"premiere",
	"adobe media encoder",
	"final cut",
	"apple",
	"quicktime",
	"avid",
	"davinci",
	"resolve",
	"vegas",
	"shotcut",
	"kdenlive",
	"openshot",
	"imovie",
	"camtasia",
	"obs",
	"wondershare",
	"go pro",
	"gopro",
	"android",
	"iphone",
}
