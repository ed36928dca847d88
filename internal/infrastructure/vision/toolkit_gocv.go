//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"

	"gocv.io/x/gocv"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// GoCVToolkit реализация Vision Toolkit на OpenCV.
type GoCVToolkit struct {
	Hole Preprocess
	Bite Preprocess
}

// NewGoCVToolkit создаёт toolkit с параметрами по умолчанию.
func NewGoCVToolkit() *GoCVToolkit {
	return &GoCVToolkit{Hole: HolePreprocess(), Bite: BitePreprocess()}
}

// NewContourExtractor в сборке с тегом gocv контуры ищет OpenCV.
func NewContourExtractor() port.ContourExtractor {
	return NewGoCVToolkit()
}

// HoleScene бинаризует фото, инвертирует маску и возвращает внешние границы
// и границы дыр (RETR_CCOMP) с простой аппроксимацией цепочек.
func (t *GoCVToolkit) HoleScene(ctx context.Context, img image.Image, p port.HoleExtraction) (*entity.HoleScene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask, err := t.binarize(img, t.Hole, p.Threshold)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.Threshold(mask, &inverted, 0, 255, gocv.ThresholdBinaryInv)

	contours := gocv.FindContours(inverted, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	shapes := make([]entity.Shape, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		outline := toContour(pv)
		shapes = append(shapes, entity.Shape{
			Outline:   outline,
			Area:      gocv.ContourArea(pv),
			Perimeter: gocv.ArcLength(pv, true),
			Centroid:  polygonMoments(outline).centroid(),
		})
	}

	maskImg, err := toGray(inverted)
	if err != nil {
		return nil, err
	}

	return &entity.HoleScene{
		Width:        inverted.Cols(),
		Height:       inverted.Rows(),
		Shapes:       shapes,
		IsForeground: grayForeground(maskImg),
	}, nil
}

// BiteContours возвращает все границы маски (RETR_TREE) без аппроксимации.
func (t *GoCVToolkit) BiteContours(ctx context.Context, img image.Image, p port.BiteExtraction) ([]entity.Contour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask, err := t.binarize(img, t.Bite, p.Threshold)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxNone)
	defer contours.Close()

	out := make([]entity.Contour, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		out = append(out, toContour(contours.At(i)))
	}
	return out, nil
}

// binarize серый → размытие → порог → расширение.
func (t *GoCVToolkit) binarize(img image.Image, pre Preprocess, threshold int) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer mat.Close()

	if mat.Empty() {
		return gocv.NewMat(), errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(pre.BlurKernel, pre.BlurKernel), pre.BlurSigma, 0, gocv.BorderDefault)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(blur, &bin, float32(threshold), 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(pre.DilateKernel, pre.DilateKernel))
	defer kernel.Close()

	dilated := gocv.NewMat()
	gocv.Dilate(bin, &dilated, kernel)
	return dilated, nil
}

func toContour(pv gocv.PointVector) entity.Contour {
	c := make(entity.Contour, pv.Size())
	for j := 0; j < pv.Size(); j++ {
		p := pv.At(j)
		c[j] = entity.Pt(p.X, p.Y)
	}
	return c
}

// toGray копирует одноканальную маску в память Go, чтобы Mat можно было закрыть.
func toGray(mat gocv.Mat) (*image.Gray, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	b := img.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Set(x, y, img.At(x, y))
		}
	}
	return g, nil
}

var _ port.ContourExtractor = (*GoCVToolkit)(nil)
