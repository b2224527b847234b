/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package starkcurve implements the STARK-friendly elliptic curve used by
// StarkEx, y^2 = x^3 + x + beta over the 252-bit prime field, together with
// the deterministic ECDSA variant deployed on that network. The signing
// construction (nonce generation framing, un-reduced r, 2^251 bounds) is a
// wire-compatibility contract with the deployed network, so it is pinned by
// golden vectors rather than delegated to a generic ECDSA implementation.
package starkcurve

import "math/big"

var (
	fieldPrime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
	curveOrder, _ = new(big.Int).SetString("800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2f", 16)
	curveBeta, _  = new(big.Int).SetString("6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89", 16)
	genX, _       = new(big.Int).SetString("1ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca", 16)
	genY, _       = new(big.Int).SetString("5668060aa49730b7be4801df46ec62de53ecd11abe43a32873000c36e8dc1f", 16)

	one = big.NewInt(1)

	// Signature components and message hashes are bounded by 2^251, the bit
	// size of the field prime.
	elementUpperBound = new(big.Int).Lsh(one, 251)
)

// Order returns a copy of the group order of the curve generator.
func Order() *big.Int {
	return new(big.Int).Set(curveOrder)
}

// FieldPrime returns a copy of the prime modulus of the base field.
func FieldPrime() *big.Int {
	return new(big.Int).Set(fieldPrime)
}

type point struct {
	x, y *big.Int
}

// add computes p1 + p2 in affine coordinates. A nil point is the identity.
func add(p1, p2 *point) *point {
	if p1 == nil {
		return p2
	}
	if p2 == nil {
		return p1
	}
	if p1.x.Cmp(p2.x) == 0 {
		ySum := new(big.Int).Add(p1.y, p2.y)
		if ySum.Mod(ySum, fieldPrime).Sign() == 0 {
			return nil
		}
		return double(p1)
	}
	num := new(big.Int).Sub(p2.y, p1.y)
	den := new(big.Int).Sub(p2.x, p1.x)
	den.ModInverse(den, fieldPrime)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, fieldPrime)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, fieldPrime)

	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, fieldPrime)
	return &point{x: x3, y: y3}
}

// double computes 2p, with alpha = 1 in the tangent slope.
func double(p *point) *point {
	if p == nil {
		return nil
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, one)
	den := new(big.Int).Lsh(p.y, 1)
	den.ModInverse(den, fieldPrime)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, fieldPrime)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.x)
	x3.Sub(x3, p.x)
	x3.Mod(x3, fieldPrime)

	y3 := new(big.Int).Sub(p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.y)
	y3.Mod(y3, fieldPrime)
	return &point{x: x3, y: y3}
}

func scalarMult(k *big.Int, p *point) *point {
	var acc *point
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = double(acc)
		if k.Bit(i) == 1 {
			acc = add(acc, p)
		}
	}
	return acc
}

func scalarBaseMult(k *big.Int) *point {
	return scalarMult(k, &point{x: genX, y: genY})
}

// PrivateToPublicKey returns the Stark public key for a private key scalar,
// which by StarkEx convention is the x-coordinate of privateKey*G.
func PrivateToPublicKey(privateKey *big.Int) *big.Int {
	p := scalarBaseMult(privateKey)
	return new(big.Int).Set(p.x)
}

// pointFromX recovers the two candidate curve points for an x-coordinate,
// or nil if x^3 + x + beta is a non-residue.
func pointFromX(x *big.Int) *point {
	y2 := new(big.Int).Mul(x, x)
	y2.Mul(y2, x)
	y2.Add(y2, x)
	y2.Add(y2, curveBeta)
	y2.Mod(y2, fieldPrime)
	y := new(big.Int).ModSqrt(y2, fieldPrime)
	if y == nil {
		return nil
	}
	return &point{x: new(big.Int).Set(x), y: y}
}

func negate(p *point) *point {
	if p == nil {
		return nil
	}
	return &point{x: p.x, y: new(big.Int).Sub(fieldPrime, p.y)}
}
