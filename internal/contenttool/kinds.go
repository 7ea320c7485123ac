package contenttool

import (
	"path"
	"strings"
)

// Kind classifies an asset for per-file import configuration.
type Kind int

const (
	KindData Kind = iota
	KindTexture
	KindAudio
	KindShader
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindAudio:
		return "audio"
	case KindShader:
		return "shader"
	}
	return "data"
}

// KindSpec is the tagged variant handed to Configure: the kind plus the
// kind-specific tuning arguments the configure tool expects.
type KindSpec struct {
	Kind Kind
	Args []string
}

// Kinds are resolved through an extension lookup rather than by inspecting
// file contents.
var kindByExt = map[string]KindSpec{
	".png":    {Kind: KindTexture, Args: []string{"--mipmaps"}},
	".jpg":    {Kind: KindTexture, Args: []string{"--mipmaps"}},
	".jpeg":   {Kind: KindTexture, Args: []string{"--mipmaps"}},
	".tga":    {Kind: KindTexture, Args: []string{"--mipmaps"}},
	".dds":    {Kind: KindTexture},
	".wav":    {Kind: KindAudio, Args: []string{"--decompress-on-load"}},
	".ogg":    {Kind: KindAudio},
	".mp3":    {Kind: KindAudio},
	".shader": {Kind: KindShader},
	".hlsl":   {Kind: KindShader},
	".glsl":   {Kind: KindShader},
}

// KindFor returns the KindSpec for an asset path. Unknown extensions are
// plain data.
func KindFor(assetPath string) KindSpec {
	ext := strings.ToLower(path.Ext(assetPath))
	if spec, ok := kindByExt[ext]; ok {
		return spec
	}
	return KindSpec{Kind: KindData}
}
