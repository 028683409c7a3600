package chronoid

// weylMultipliers holds 128 prime 64-bit constants derived from the golden
// ratio with silver-ratio spacing. Each per-width multiplier derived from an
// entry, (m >> (64-bits)) | 1, is odd, so the mixing multiplication is a
// bijection modulo 2^bits.
var weylMultipliers = [128]uint64{
	0x9E3779B97F4A7C55, 0x084160217307455F, 0x724B468966C40E29, 0xDC552CF15A80D73D,
	0x465F13594E3DA051, 0xB068F9C141FA6951, 0x1A72E02935B7324B, 0x847CC6912973FB51,
	0xEE86ACF91D30C45D, 0x5890936110ED8D9D, 0xC29A79C904AA56B5, 0x2CA46030F8671F7B,
	0x96AE4698EC23E935, 0x00B82D00DFE0B1C1, 0x6AC21368D39D7A8B, 0xD4CBF9D0C75A43E7,
	0x3ED5E038BB170C95, 0xA8DFC6A0AED3D5A9, 0x12E9AD08A2909EB1, 0x7CF39370964D67B1,
	0xE6FD79D88A0A30B7, 0x510760407DC6F9CF, 0xBB1146A87183C2C7, 0x251B2D1065408BE9,
	0x8F25137858FD54D7, 0xF92EF9E04CBA1DEF, 0x6338E0484076E71D, 0xCD42C6B03433B011,
	0x374CAD1827F0791D, 0xA15693801BAD4215, 0x0B6079E80F6A0B09, 0x756A60500326D41B,
	0xDF7446B7F6E39D1F, 0x497E2D1FEAA06635, 0xB3881387DE5D2F37, 0x1D91F9EFD219F857,
	0x879BE057C5D6C153, 0xF1A5C6BFB9938A6B, 0x5BAFAD27AD505375, 0xC5B9938FA10D1C5D,
	0x2FC379F794C9E573, 0x99CD605F8886AEE9, 0x03D746C77C43776B, 0x6DE12D2F7000414F,
	0xD7EB139763BD09A1, 0x41F4F9FF5779D297, 0xABFEE0674B369BAF, 0x1608C6CF3EF364DD,
	0x8012AD3732B02DC1, 0xEA1C939F266CF721, 0x54267A071A29BFB3, 0xBE30606F0DE688F3,
	0x283A46D701A351E5, 0x92442D3EF5601ABD, 0xFC4E13A6E91CE40F, 0x6657FA0EDCD9ACCD,
	0xD061E076D09675D9, 0x3A6BC6DEC4533EDD, 0xA475AD46B81007E7, 0x0E7F93AEABCCD139,
	0x78897A169F899A17, 0xE293607E93466303, 0x4C9D46E687032C27, 0xB6A72D4E7ABFF54F,
	0x20B113B66E7CBE91, 0x8ABAFA1E62398725, 0xF4C4E08655F65035, 0x5ECEC6EE49B31947,
	0xC8D8AD563D6FE241, 0x32E293BE312CAB69, 0x9CEC7A2624E9744B, 0x06F6608E18A63D4D,
	0x710046F60C6306AF, 0xDB0A2D5E001FCF61, 0x451413C5F3DC98B3, 0xAF1DFA2DE7996193,
	0x1927E095DB562A87, 0x8331C6FDCF12F37F, 0xED3BAD65C2CFBCC7, 0x574593CDB68C858F,
	0xC14F7A35AA494EA1, 0x2B59609D9E0617B3, 0x9563470591C2E0DB, 0xFF6D2D6D857FA9C3,
	0x697713D5793C72C1, 0xD380FA3D6CF93BC3, 0x3D8AE0A560B60525, 0xA794C70D5472CE01,
	0x119EAD75482F96E1, 0x7BA893DD3BEC601D, 0xE5B27A452FA92947, 0x4FBC60AD2365F21B,
	0xB9C647151722BB17, 0x23D02D7D0ADF842B, 0x8DDA13E4FE9C4D19, 0xF7E3FA4CF2591655,
	0x61EDE0B4E615DF23, 0xCBF7C71CD9D2A89B, 0x3601AD84CD8F7175, 0xA00B93ECC14C3A3F,
	0x0A157A54B5090345, 0x741F60BCA8C5CC3D, 0xDE2947249C829575, 0x48332D8C903F5E77,
	0xB23D13F483FC279B, 0x1C46FA5C77B8F063, 0x8650E0C46B75B98D, 0xF05AC72C5F32827B,
	0x5A64AD9452EF4BAF, 0xC46E93FC46AC149D, 0x2E787A643A68DDBB, 0x988260CC2E25A6D9,
	0x028C473421E26F99, 0x6C962D9C159F3911, 0xD6A01404095C01B3, 0x40A9FA6BFD18CAD5,
	0xAAB3E0D3F0D593DB, 0x14BDC73BE4925D13, 0x7EC7ADA3D84F25D7, 0xE8D1940BCC0BEED1,
	0x52DB7A73BFC8B7D7, 0xBCE560DBB3858119, 0x26EF4743A7424A1B, 0x90F92DAB9AFF12FD,
	0xFB0314138EBBDC2D, 0x650CFA7B8278A55D, 0xCF16E0E376356E0F, 0x3920C74B69F23717,
}
