package vehicle

// World Manufacturer Identifier tables. Resolution order: the 3-char
// motorcycle/scooter table wins over everything (the VIN is authoritative
// for class), then the 3-char car table, then the 2-char fallback table.

// motoEntry carries the make and class for a two-wheeler WMI.
type motoEntry struct {
	Make  string
	Class VehicleClass
}

// motoWMI maps 3-char WMIs of motorcycle and scooter manufacturers.
var motoWMI = map[string]motoEntry{
	"JH2": {"Honda", ClassMotorcycle},
	"9C2": {"Honda", ClassMotorcycle},
	"MLH": {"Honda", ClassMotorcycle},
	"JYA": {"Yamaha", ClassMotorcycle},
	"JKA": {"Kawasaki", ClassMotorcycle},
	"JS1": {"Suzuki", ClassMotorcycle},
	"1HD": {"Harley-Davidson", ClassMotorcycle},
	"5HD": {"Harley-Davidson", ClassMotorcycle},
	"ZDM": {"Ducati", ClassMotorcycle},
	"ZD4": {"Aprilia", ClassMotorcycle},
	"VBK": {"KTM", ClassMotorcycle},
	"SMT": {"Triumph", ClassMotorcycle},
	"ZAP": {"Vespa", ClassScooter},
	"MD6": {"Genuine Scooters", ClassScooter},
	"RFG": {"Kymco", ClassScooter},
	"LXM": {"Yamaha", ClassScooter},
}

// carWMI maps 3-char WMIs of passenger-car manufacturers.
var carWMI = map[string]string{
	"1HG": "Honda",
	"2HG": "Honda",
	"JHM": "Honda",
	"SHH": "Honda",
	"1G1": "Chevrolet",
	"1GC": "Chevrolet",
	"2G1": "Chevrolet",
	"3GC": "Chevrolet",
	"1FA": "Ford",
	"1FT": "Ford",
	"1FM": "Ford",
	"3FA": "Ford",
	"1C3": "Chrysler",
	"1C4": "Jeep",
	"1C6": "Ram",
	"2C3": "Chrysler",
	"4T1": "Toyota",
	"2T1": "Toyota",
	"5TD": "Toyota",
	"5TF": "Toyota",
	"JT2": "Toyota",
	"JTD": "Toyota",
	"JTH": "Lexus",
	"JTJ": "Lexus",
	"5YJ": "Tesla",
	"7SA": "Tesla",
	"WBA": "BMW",
	"WBS": "BMW",
	"5UX": "BMW",
	"WDB": "Mercedes-Benz",
	"WDD": "Mercedes-Benz",
	"W1K": "Mercedes-Benz",
	"WAU": "Audi",
	"WA1": "Audi",
	"WVW": "Volkswagen",
	"3VW": "Volkswagen",
	"1VW": "Volkswagen",
	"JN1": "Nissan",
	"1N4": "Nissan",
	"5N1": "Nissan",
	"JNK": "Infiniti",
	"JF1": "Subaru",
	"JF2": "Subaru",
	"4S3": "Subaru",
	"JM1": "Mazda",
	"3MZ": "Mazda",
	"KMH": "Hyundai",
	"5NP": "Hyundai",
	"KNA": "Kia",
	"KND": "Kia",
	"19U": "Acura",
	"JH4": "Acura",
	"1G6": "Cadillac",
	"1GY": "Cadillac",
	"YV1": "Volvo",
	"WP0": "Porsche",
	"SAL": "Land Rover",
	"JA3": "Mitsubishi",
	"JA4": "Mitsubishi",
}

// wmiFallback maps 2-char prefixes used when no 3-char WMI matches.
var wmiFallback = map[string]string{
	"1G": "General Motors",
	"2G": "General Motors",
	"1F": "Ford",
	"1C": "Chrysler",
	"1N": "Nissan",
	"JT": "Toyota",
	"JH": "Honda",
	"JN": "Nissan",
	"JM": "Mazda",
	"JF": "Subaru",
	"JA": "Mitsubishi",
	"KM": "Hyundai",
	"KN": "Kia",
	"WB": "BMW",
	"WD": "Mercedes-Benz",
	"WA": "Audi",
	"WV": "Volkswagen",
	"W1": "Mercedes-Benz",
	"YV": "Volvo",
	"5Y": "Tesla",
	"ZD": "Ducati",
	"ZA": "Piaggio",
}

// yearCodes maps the 10th VIN character to a model year. Letters run
// A through Y (skipping I, O, Q, U, Z) for 2010-2030; digits 1-9 cover
// 2001-2009. Characters outside the map carry no year information.
var yearCodes = map[byte]int{
	'A': 2010, 'B': 2011, 'C': 2012, 'D': 2013, 'E': 2014,
	'F': 2015, 'G': 2016, 'H': 2017, 'J': 2018, 'K': 2019,
	'L': 2020, 'M': 2021, 'N': 2022, 'P': 2023, 'R': 2024,
	'S': 2025, 'T': 2026, 'V': 2027, 'W': 2028, 'X': 2029,
	'Y': 2030,
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005,
	'6': 2006, '7': 2007, '8': 2008, '9': 2009,
}
