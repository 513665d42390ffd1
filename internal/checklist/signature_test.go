package checklist_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/lslops/checklist-management/internal/checklist"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Signature decoding", func() {
	Describe("DecodeSignature", func() {
		It("should decode a full data URL payload", func() {
			raw, err := checklist.DecodeSignature(signaturePayload())
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).NotTo(BeEmpty())
		})

		It("should decode a bare base64 payload without the data URL prefix", func() {
			payload := strings.TrimPrefix(signaturePayload(), "data:image/png;base64,")

			raw, err := checklist.DecodeSignature(payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).NotTo(BeEmpty())
		})

		It("should repair one, two or three stripped padding characters", func() {
			full := signaturePayload()
			for strip := 1; strip <= 3; strip++ {
				payload := full
				stripped := 0
				for stripped < strip && strings.HasSuffix(payload, "=") {
					payload = strings.TrimSuffix(payload, "=")
					stripped++
				}

				raw, err := checklist.DecodeSignature(payload)
				Expect(err).NotTo(HaveOccurred())
				Expect(raw).NotTo(BeEmpty())
			}
		})

		It("should report garbage base64 as undecodable", func() {
			_, err := checklist.DecodeSignature("data:image/png;base64,@@not-base64@@")
			Expect(err).To(MatchError(checklist.ErrSignatureUndecodable))
		})

		It("should report valid base64 of a non-image as undecodable", func() {
			_, err := checklist.DecodeSignature("aGVsbG8gd29ybGQ=")
			Expect(err).To(MatchError(checklist.ErrSignatureUndecodable))
		})

		It("should report an empty payload as undecodable", func() {
			_, err := checklist.DecodeSignature("   ")
			Expect(err).To(MatchError(checklist.ErrSignatureUndecodable))
		})
	})

	Describe("FlattenSignature", func() {
		It("should composite transparent pixels onto a white background", func() {
			src := image.NewRGBA(image.Rect(0, 0, 2, 2))
			src.Set(0, 0, color.Black)
			var buf bytes.Buffer
			Expect(png.Encode(&buf, src)).To(Succeed())

			flat, err := checklist.FlattenSignature(buf.Bytes())
			Expect(err).NotTo(HaveOccurred())

			decoded, _, err := image.Decode(bytes.NewReader(flat))
			Expect(err).NotTo(HaveOccurred())

			r, g, b, a := decoded.At(1, 1).RGBA()
			Expect(a).To(Equal(uint32(0xffff)))
			Expect(r).To(Equal(uint32(0xffff)))
			Expect(g).To(Equal(uint32(0xffff)))
			Expect(b).To(Equal(uint32(0xffff)))
		})

		It("should fail on bytes that are not an image", func() {
			_, err := checklist.FlattenSignature([]byte("not an image"))
			Expect(err).To(HaveOccurred())
		})
	})
})
