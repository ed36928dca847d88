package vision

import (
	"context"
	"image"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/gift"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// Preprocess параметры подготовки маски, общие для обоих детекторов.
type Preprocess struct {
	BlurKernel   int     // размер ядра Гаусса
	BlurSigma    float64 // сигма размытия
	DilateKernel int     // размер квадратного ядра расширения
}

// HolePreprocess размытие 7×7 σ=10 и расширение 6×6.
func HolePreprocess() Preprocess {
	return Preprocess{BlurKernel: 7, BlurSigma: 10, DilateKernel: 6}
}

// BitePreprocess размытие 7×7 σ=1 и расширение 6×6.
func BitePreprocess() Preprocess {
	return Preprocess{BlurKernel: 7, BlurSigma: 1, DilateKernel: 6}
}

// ImageToolkit реализация Vision Toolkit на чистом Go.
//
// Серый канал, свёртка и расширение выполняются gift, бинаризацию делает bild,
// контуры ищутся обходом границ. Ядро расширения округляется до нечётного размера.
type ImageToolkit struct {
	Hole Preprocess
	Bite Preprocess
}

// NewImageToolkit создаёт toolkit с параметрами по умолчанию.
func NewImageToolkit() *ImageToolkit {
	return &ImageToolkit{Hole: HolePreprocess(), Bite: BitePreprocess()}
}

// HoleScene строит инвертированную маску и возвращает все её границы с моментами.
func (t *ImageToolkit) HoleScene(ctx context.Context, img image.Image, p port.HoleExtraction) (*entity.HoleScene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask := t.binarize(img, t.Hole, p.Threshold)
	inverted := image.NewGray(mask.Bounds())
	gift.New(gift.Invert()).Draw(inverted, mask)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	borders := traceBorders(inverted)
	shapes := make([]entity.Shape, 0, len(borders))
	for _, c := range borders {
		shapes = append(shapes, shapeOf(compressChain(c)))
	}

	b := inverted.Bounds()
	return &entity.HoleScene{
		Width:        b.Dx(),
		Height:       b.Dy(),
		Shapes:       shapes,
		IsForeground: grayForeground(inverted),
	}, nil
}

// BiteContours возвращает все границы маски без аппроксимации.
func (t *ImageToolkit) BiteContours(ctx context.Context, img image.Image, p port.BiteExtraction) ([]entity.Contour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mask := t.binarize(img, t.Bite, p.Threshold)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return traceBorders(mask), nil
}

// binarize серый → размытие → порог → расширение. Результат начинается с (0, 0).
func (t *ImageToolkit) binarize(img image.Image, pre Preprocess, threshold int) *image.Gray {
	smooth := gift.New(
		gift.Grayscale(),
		gift.Convolution(gaussianKernel(pre.BlurKernel, pre.BlurSigma), true, false, false, 0),
	)
	gray := image.NewGray(smooth.Bounds(img.Bounds()))
	smooth.Draw(gray, img)

	bin := segment.Threshold(gray, thresholdLevel(threshold))

	dilate := gift.New(gift.Maximum(oddKernel(pre.DilateKernel), false))
	out := image.NewGray(dilate.Bounds(bin.Bounds()))
	dilate.Draw(out, bin)
	return out
}

// thresholdLevel переводит порог «строго больше t» в уровень «не меньше level».
func thresholdLevel(t int) uint8 {
	switch {
	case t < 0:
		return 0
	case t >= 254:
		return 255
	}
	return uint8(t + 1)
}

func oddKernel(k int) int {
	if k < 1 {
		return 1
	}
	if k%2 == 0 {
		return k + 1
	}
	return k
}

// gaussianKernel квадратное ядро size×size с сигмой sigma, нормировка делается gift.
func gaussianKernel(size int, sigma float64) []float32 {
	size = oddKernel(size)
	if sigma <= 0 {
		// так же, как OpenCV выбирает сигму по размеру ядра
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}
	r := size / 2
	weights := make([]float64, size)
	for i := range weights {
		d := float64(i - r)
		weights[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}

	kernel := make([]float32, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			kernel = append(kernel, float32(weights[y]*weights[x]))
		}
	}
	return kernel
}

// grayForeground считает передним планом пиксели со значением 255.
func grayForeground(mask *image.Gray) entity.ForegroundFunc {
	b := mask.Bounds()
	return func(p entity.Point) bool {
		return mask.GrayAt(b.Min.X+p.X, b.Min.Y+p.Y).Y == 255
	}
}

var _ port.ContourExtractor = (*ImageToolkit)(nil)
