/*
 * MIT License
 *
 * Copyright (c) 2021 OpenBand
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package builder_test

import (
	"bytes"
	"encoding/binary"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// roundTrip feeds the wire form of a created unit into a fresh builder
// of the same kind and expects exactly one equal unit back.
func roundTrip(b libbld.UnitBuilder, payload []byte) {
	src := b.Create(payload)

	fresh := b.Clone()
	rest, err := fresh.Feed(src.NetworkString())
	Expect(err).ToNot(HaveOccurred())
	Expect(rest).To(BeEmpty())
	Expect(fresh.UnitReady()).To(BeTrue())

	dst := fresh.Unit()
	Expect(dst.Equal(src)).To(BeTrue())
	Expect(fresh.UnitReady()).To(BeFalse())
}

var _ = Describe("Raw Builder", func() {
	It("should claim the whole input as one unit", func() {
		b := libbld.NewRaw()
		rest, err := b.Feed([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(BeEmpty())
		Expect(b.UnitReady()).To(BeTrue())
		Expect(b.Unit().Bytes()).To(Equal([]byte("hello")))
	})

	It("should stay not ready on empty input", func() {
		b := libbld.NewRaw()
		rest, err := b.Feed(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(BeEmpty())
		Expect(b.UnitReady()).To(BeFalse())
	})

	It("should round trip payloads", func() {
		roundTrip(libbld.NewRaw(), []byte("payload"))
		roundTrip(libbld.NewRaw(), []byte{0x00, 0xff, 0x7f})
	})
})

var _ = Describe("Integer Builder", func() {
	It("should stay not ready with a 3-byte prefix and become ready on the 4th byte", func() {
		m := libbld.NewManager(libbld.NewInteger())

		Expect(m.Feed([]byte{0x00, 0x00, 0x01})).To(Succeed())
		Expect(m.ReceiveAvailable()).To(BeFalse())
		Expect(m.Residual()).To(HaveLen(3))

		Expect(m.Feed([]byte{0x02})).To(Succeed())
		Expect(m.ReceiveAvailable()).To(BeTrue())

		u, err := m.PopFront()
		Expect(err).ToNot(HaveOccurred())
		Expect(u.Integer()).To(Equal(uint32(0x0102)))
		Expect(m.Residual()).To(BeEmpty())
	})

	It("should interpret bytes as big-endian network order", func() {
		b := libbld.NewInteger()
		rest, err := b.Feed([]byte{0x01, 0x02, 0x03, 0x04})
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(BeEmpty())
		Expect(b.Unit().Integer()).To(Equal(uint32(0x01020304)))
	})

	It("should round trip values", func() {
		u := libbld.CreateInteger(42)
		Expect(u.NetworkString()).To(Equal([]byte{0x00, 0x00, 0x00, 0x2a}))

		fresh := libbld.NewInteger()
		_, err := fresh.Feed(u.NetworkString())
		Expect(err).ToNot(HaveOccurred())
		Expect(fresh.Unit().Equal(u)).To(BeTrue())
	})
})

var _ = Describe("Fixed String Builder", func() {
	It("should be ready at exactly the configured size", func() {
		b := libbld.NewFixedString(4)

		rest, err := b.Feed([]byte("abc"))
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal([]byte("abc")))
		Expect(b.UnitReady()).To(BeFalse())

		rest, err = b.Feed([]byte("abcdef"))
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal([]byte("ef")))
		Expect(b.Unit().Bytes()).To(Equal([]byte("abcd")))
	})

	It("should reject a non positive size", func() {
		b := libbld.NewFixedString(0)
		_, err := b.Feed([]byte("abcd"))
		Expect(err).To(HaveOccurred())
		Expect(liberr.Has(err, libbld.ErrorSizeInvalid)).To(BeTrue())
	})

	It("should pad short payloads on create", func() {
		b := libbld.NewFixedString(4)
		u := b.Create([]byte("ab"))
		Expect(u.NetworkString()).To(HaveLen(4))
	})

	It("should round trip payloads of the exact size", func() {
		roundTrip(libbld.NewFixedString(8), []byte("exactly8"))
	})
})

var _ = Describe("Message Builder", func() {
	It("should parse a header then the payload", func() {
		b := libbld.NewMessage(1024)
		wire := b.Create([]byte("ping")).NetworkString()
		Expect(wire).To(HaveLen(8))
		Expect(binary.BigEndian.Uint32(wire)).To(Equal(uint32(4)))

		rest, err := b.Feed(wire)
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(BeEmpty())
		Expect(b.Unit().Bytes()).To(Equal([]byte("ping")))
	})

	It("should stay not ready while the payload is incomplete", func() {
		b := libbld.NewMessage(1024)
		wire := b.Create([]byte("pong test")).NetworkString()

		rest, err := b.Feed(wire[:6])
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal(wire[:6]))
		Expect(b.UnitReady()).To(BeFalse())
	})

	It("should accept a payload of exactly the maximum", func() {
		b := libbld.NewMessage(16)
		payload := bytes.Repeat([]byte("x"), 16)

		rest, err := b.Feed(b.Create(payload).NetworkString())
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(BeEmpty())
		Expect(b.Unit().Bytes()).To(Equal(payload))
	})

	It("should fail a payload one above the maximum", func() {
		b := libbld.NewMessage(16)
		payload := bytes.Repeat([]byte("x"), 17)

		_, err := b.Feed(b.Create(payload).NetworkString())
		Expect(err).To(HaveOccurred())
		Expect(liberr.Has(err, libbld.ErrorPayloadOverflow)).To(BeTrue())
	})

	It("should reject an overlength header before the payload arrives", func() {
		b := libbld.NewMessage(16)
		head := make([]byte, 4)
		binary.BigEndian.PutUint32(head, 1<<20)

		_, err := b.Feed(head)
		Expect(err).To(HaveOccurred())
	})

	It("should round trip payloads including empty", func() {
		roundTrip(libbld.NewMessage(1024), []byte(""))
		roundTrip(libbld.NewMessage(1024), []byte("a"))
		roundTrip(libbld.NewMessage(1024), bytes.Repeat([]byte("z"), 1024))
	})
})

var _ = Describe("Delimited Builder", func() {
	It("should split on the delimiter", func() {
		b := libbld.NewDelimited([]byte("\r\n"))

		rest, err := b.Feed([]byte("first\r\nsecond"))
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal([]byte("second")))
		Expect(b.Unit().Bytes()).To(Equal([]byte("first")))
	})

	It("should produce one unit per delimiter with a split multi-byte delimiter", func() {
		m := libbld.NewManager(libbld.NewDelimited([]byte("\r\n")))

		Expect(m.Feed([]byte("alpha\r"))).To(Succeed())
		Expect(m.ReceiveAvailable()).To(BeFalse())

		Expect(m.Feed([]byte("\nbeta\r\n"))).To(Succeed())

		u1, err := m.PopFront()
		Expect(err).ToNot(HaveOccurred())
		Expect(u1.Bytes()).To(Equal([]byte("alpha")))

		u2, err := m.PopFront()
		Expect(err).ToNot(HaveOccurred())
		Expect(u2.Bytes()).To(Equal([]byte("beta")))

		Expect(m.ReceiveAvailable()).To(BeFalse())
	})

	It("should fail without a configured delimiter", func() {
		b := libbld.NewDelimited(nil)
		_, err := b.Feed([]byte("data"))
		Expect(err).To(HaveOccurred())
		Expect(liberr.Has(err, libbld.ErrorDelimiterEmpty)).To(BeTrue())
	})

	It("should round trip payloads", func() {
		roundTrip(libbld.NewDelimited([]byte("|")), []byte("value"))
		roundTrip(libbld.NewDelimited([]byte("\r\n")), []byte(""))
	})
})

var _ = Describe("Unit projections", func() {
	It("should expose printable forms", func() {
		Expect(libunt.NewString([]byte("ok\x01")).PrintableString()).To(Equal("ok\\x01"))
		Expect(libunt.NewNil().PrintableString()).To(Equal("<nil>"))
		Expect(libbld.CreateInteger(7).PrintableString()).To(Equal("7"))
	})

	It("should compare composites deeply", func() {
		a := libunt.NewComposite(libunt.NewString([]byte("x")), libbld.CreateInteger(1))
		b := libunt.NewComposite(libunt.NewString([]byte("x")), libbld.CreateInteger(1))
		c := libunt.NewComposite(libunt.NewString([]byte("y")))

		Expect(a.Equal(b)).To(BeTrue())
		Expect(a.Equal(c)).To(BeFalse())
	})

	It("should concatenate composite wire forms", func() {
		u := libunt.NewComposite(libunt.NewString([]byte("ab")), libbld.CreateInteger(1))
		Expect(u.NetworkString()).To(Equal([]byte{'a', 'b', 0x00, 0x00, 0x00, 0x01}))
	})
})
