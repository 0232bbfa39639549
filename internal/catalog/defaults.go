package catalog

var defaultGlobalBlocklist = []string{
	// CFP aggregators
	"wikicfp.com",
	"conferencealerts.com",
	"conferenceindex.org",
	"guide2research.com",
	"allconferencealert.com",
	"conference-service.com",
	"researchbib.com",
	"resurchify.com",
	"waset.org",
	"conferencelists.org",
	"easychair.org/cfp",
	"10times.com",
	// Wiki-style references
	"wikipedia.org",
	"wikidata.org",
	// Social and video
	"twitter.com",
	"x.com",
	"facebook.com",
	"linkedin.com",
	"youtube.com",
	"reddit.com",
	// Blog platforms
	"medium.com",
	"blogspot.com",
	"wordpress.com",
	"substack.com",
	"tumblr.com",
}

var defaultEntries = []Entry{
	// Computer architecture
	{Acronym: "ISCA", FullName: "International Symposium on Computer Architecture", Category: "Architecture",
		URLPatterns: []string{"https://iscaconf.org/isca{year}/"},
		Blocklist:   []string{"iscas", "isca-speech", "isca-archive"}},
	{Acronym: "MICRO", FullName: "International Symposium on Microarchitecture", Category: "Architecture",
		URLPatterns: []string{"https://microarch.org/micro{edition}/"}, EditionBase: 1967,
		Blocklist: []string{"microbiology", "microscopy", "microsoft", "microwave", "micronano", "micro-nano"}},
	{Acronym: "HPCA", FullName: "International Symposium on High-Performance Computer Architecture", Category: "Architecture",
		URLPatterns: []string{"https://hpca-conf.org/{year}/"}},
	{Acronym: "ASPLOS", FullName: "Architectural Support for Programming Languages and Operating Systems", Category: "Architecture",
		URLPatterns: []string{"https://www.asplos-conference.org/asplos{year}/"}},
	{Acronym: "ICCD", FullName: "International Conference on Computer Design", Category: "Architecture",
		URLPatterns: []string{"https://www.iccd-conf.com/"}},
	{Acronym: "ICS", FullName: "International Conference on Supercomputing", Category: "Architecture",
		Blocklist: []string{"icsc", "ics-cert", "icscyber"}},
	{Acronym: "PACT", FullName: "International Conference on Parallel Architectures and Compilation Techniques", Category: "Architecture",
		URLPatterns: []string{"https://pactconf.org/"}},
	{Acronym: "CGO", FullName: "International Symposium on Code Generation and Optimization", Category: "Architecture",
		URLPatterns: []string{"https://{year}.cgo.org/"}},

	// VLSI and circuits
	{Acronym: "ISSCC", FullName: "International Solid-State Circuits Conference", Category: "VLSI/Circuits",
		URLPatterns: []string{"https://www.isscc.org/"}},
	{Acronym: "VLSI", FullName: "Symposium on VLSI Technology and Circuits", Category: "VLSI/Circuits",
		URLPatterns: []string{"https://www.vlsisymposium.org/"},
		Blocklist:   []string{"vlsid", "vlsi-soc", "vlsisoc", "isvlsi", "glsvlsi"}},
	{Acronym: "CICC", FullName: "Custom Integrated Circuits Conference", Category: "VLSI/Circuits",
		URLPatterns: []string{"https://www.ieee-cicc.org/"}},
	{Acronym: "ESSCIRC", FullName: "European Solid-State Circuits Conference", Category: "VLSI/Circuits",
		URLPatterns: []string{"https://www.esscirc-essderc{year}.org/"}},
	{Acronym: "ISCAS", FullName: "International Symposium on Circuits and Systems", Category: "VLSI/Circuits",
		URLPatterns: []string{"https://iscas{year}.org/"},
		Blocklist:   []string{"iscaconf"}},
	{Acronym: "A-SSCC", FullName: "Asian Solid-State Circuits Conference", Category: "VLSI/Circuits"},

	// Design automation
	{Acronym: "DAC", FullName: "Design Automation Conference", Category: "Design Automation",
		URLPatterns: []string{"https://www.dac.com/"}},
	{Acronym: "ICCAD", FullName: "International Conference on Computer-Aided Design", Category: "Design Automation",
		URLPatterns: []string{"https://iccad.com/"}},
	{Acronym: "DATE", FullName: "Design, Automation and Test in Europe", Category: "Design Automation",
		URLPatterns: []string{"https://www.date-conference.com/"},
		Blocklist:   []string{"dating", "datehookup", "timeanddate"}},
	{Acronym: "ASPDAC", FullName: "Asia and South Pacific Design Automation Conference", Category: "Design Automation",
		URLPatterns: []string{"https://www.aspdac.com/aspdac{year}/"}},
	{Acronym: "ISPD", FullName: "International Symposium on Physical Design", Category: "Design Automation",
		URLPatterns: []string{"https://ispd.cc/"}},
	{Acronym: "CODES+ISSS", FullName: "International Conference on Hardware/Software Codesign and System Synthesis", Category: "Design Automation"},
	{Acronym: "ISQED", FullName: "International Symposium on Quality Electronic Design", Category: "Design Automation",
		URLPatterns: []string{"https://www.isqed.org/"}},
	{Acronym: "ISLPED", FullName: "International Symposium on Low Power Electronics and Design", Category: "Power/Energy",
		URLPatterns: []string{"https://islped.org/"}},

	// FPGA
	{Acronym: "FPGA", FullName: "International Symposium on Field-Programmable Gate Arrays", Category: "FPGA",
		URLPatterns: []string{"https://www.isfpga.org/"}},
	{Acronym: "FCCM", FullName: "Symposium on Field-Programmable Custom Computing Machines", Category: "FPGA",
		URLPatterns: []string{"https://www.fccm.org/"}},
	{Acronym: "FPL", FullName: "International Conference on Field Programmable Logic and Applications", Category: "FPGA"},

	// Test
	{Acronym: "ITC", FullName: "International Test Conference", Category: "Testing",
		URLPatterns: []string{"https://www.itctestweek.org/"}},
	{Acronym: "VTS", FullName: "VLSI Test Symposium", Category: "Testing",
		URLPatterns: []string{"https://tttc-vts.org/"}},

	// Systems
	{Acronym: "SOSP", FullName: "Symposium on Operating Systems Principles", Category: "Systems",
		URLPatterns: []string{"https://sigops.org/s/conferences/sosp/{year}/"}},
	{Acronym: "OSDI", FullName: "Symposium on Operating Systems Design and Implementation", Category: "Systems",
		URLPatterns: []string{"https://www.usenix.org/conference/osdi{yy}"}},
	{Acronym: "EUROSYS", FullName: "European Conference on Computer Systems", Category: "Systems",
		URLPatterns: []string{"https://{year}.eurosys.org/"}},
	{Acronym: "ATC", FullName: "USENIX Annual Technical Conference", Category: "Systems",
		URLPatterns: []string{"https://www.usenix.org/conference/atc{yy}"},
		Blocklist:   []string{"airtraffic", "air-traffic", "atcc"}},
	{Acronym: "FAST", FullName: "USENIX Conference on File and Storage Technologies", Category: "Systems",
		URLPatterns: []string{"https://www.usenix.org/conference/fast{yy}"},
		Blocklist:   []string{"fastcompany", "fast-food", "fastly"}},
	{Acronym: "NSDI", FullName: "Symposium on Networked Systems Design and Implementation", Category: "Systems",
		URLPatterns: []string{"https://www.usenix.org/conference/nsdi{yy}"}},

	// Security
	{Acronym: "HOST", FullName: "IEEE International Symposium on Hardware Oriented Security and Trust", Category: "Security",
		URLPatterns: []string{"https://www.hostsymposium.org/"},
		Blocklist:   []string{"hosting", "hostinger", "hostgator"}},
	{Acronym: "CHES", FullName: "Conference on Cryptographic Hardware and Embedded Systems", Category: "Security",
		URLPatterns: []string{"https://ches.iacr.org/{year}/"},
		Blocklist:   []string{"chess"}},

	// Performance and emerging
	{Acronym: "HOTCHIPS", FullName: "Hot Chips: A Symposium on High Performance Chips", Category: "Emerging",
		URLPatterns: []string{"https://hotchips.org/"}},
	{Acronym: "ISPASS", FullName: "International Symposium on Performance Analysis of Systems and Software", Category: "Performance"},
	{Acronym: "IISWC", FullName: "International Symposium on Workload Characterization", Category: "Performance"},
	{Acronym: "MEMSYS", FullName: "International Symposium on Memory Systems", Category: "Memory/Storage"},
	{Acronym: "MLSys", FullName: "Conference on Machine Learning and Systems", Category: "AI/ML Hardware",
		URLPatterns: []string{"https://mlsys.org/"}},

	// Embedded
	{Acronym: "EMSOFT", FullName: "International Conference on Embedded Software", Category: "Embedded"},
	{Acronym: "RTAS", FullName: "Real-Time and Embedded Technology and Applications Symposium", Category: "Embedded"},
	{Acronym: "RTSS", FullName: "Real-Time Systems Symposium", Category: "Embedded"},
}
