package vcf

const (
	MetaMarker   = "##"
	HeaderMarker = "#CHROM"
	SourceMarker = "##source="

	// Missing is the placeholder for an absent ID or genotype subfield.
	Missing = "."

	InfoColumn    = 7
	GenotypeStart = 9

	// DepthField is the genotype subfield holding the per-allele read depths.
	DepthField   = 2
	SamplePrefix = "NS="
)

var (
	// MaxLineSize bounds a single VCF line; wide cohorts produce long lines.
	MaxLineSize = 64 * 1024 * 1024

	StacksHets = []string{"0/1", "1/0"}
	// the comma spelling is what ipyrad files carry, keep it verbatim
	IpyradHets = []string{"0/1", "1,0"}

	// CATGIndex maps a nucleotide to its slot in an ipyrad CATG depth subfield.
	CATGIndex = map[byte]int{
		'C': 0,
		'A': 1,
		'T': 2,
		'G': 3,
	}
)
