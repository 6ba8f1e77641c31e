package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"spineview/internal/spine"
)

var blendMap = map[spine.BlendMode]ebiten.Blend{
	spine.BlendNormal:   ebiten.BlendSourceOver,
	spine.BlendAdditive: ebiten.BlendLighter,
	spine.BlendMultiply: {
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	spine.BlendScreen: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceColor,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
}

// Blend maps a slot blend mode to the ebiten blend, source over when unknown.
func Blend(mode spine.BlendMode) ebiten.Blend {
	if res, ok := blendMap[mode]; ok {
		return res
	}
	return ebiten.BlendSourceOver
}
