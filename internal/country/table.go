package country

// ioc maps IOC committee codes to display names, including committees that
// only exist in historical results.
var ioc = map[string]string{
	"AFG": "Afghanistan",
	"AHO": "Netherlands Antilles",
	"AIN": "Individual Neutral Athletes",
	"ALB": "Albania",
	"ALG": "Algeria",
	"AND": "Andorra",
	"ANG": "Angola",
	"ANT": "Antigua and Barbuda",
	"ANZ": "Australasia",
	"ARG": "Argentina",
	"ARM": "Armenia",
	"ARU": "Aruba",
	"ASA": "American Samoa",
	"AUS": "Australia",
	"AUT": "Austria",
	"AZE": "Azerbaijan",
	"BAH": "Bahamas",
	"BAN": "Bangladesh",
	"BAR": "Barbados",
	"BDI": "Burundi",
	"BEL": "Belgium",
	"BEN": "Benin",
	"BER": "Bermuda",
	"BHU": "Bhutan",
	"BIH": "Bosnia and Herzegovina",
	"BIZ": "Belize",
	"BLR": "Belarus",
	"BOH": "Bohemia",
	"BOL": "Bolivia",
	"BOT": "Botswana",
	"BRA": "Brazil",
	"BRN": "Bahrain",
	"BRU": "Brunei",
	"BUL": "Bulgaria",
	"BUR": "Burkina Faso",
	"CAF": "Central African Republic",
	"CAM": "Cambodia",
	"CAN": "Canada",
	"CAY": "Cayman Islands",
	"CGO": "Congo",
	"CHA": "Chad",
	"CHI": "Chile",
	"CHN": "China",
	"CIV": "Côte d'Ivoire",
	"CMR": "Cameroon",
	"COD": "DR Congo",
	"COK": "Cook Islands",
	"COL": "Colombia",
	"COM": "Comoros",
	"CPV": "Cabo Verde",
	"CRC": "Costa Rica",
	"CRO": "Croatia",
	"CUB": "Cuba",
	"CYP": "Cyprus",
	"CZE": "Czechia",
	"DEN": "Denmark",
	"DJI": "Djibouti",
	"DMA": "Dominica",
	"DOM": "Dominican Republic",
	"ECU": "Ecuador",
	"EGY": "Egypt",
	"EOR": "Refugee Olympic Team",
	"ERI": "Eritrea",
	"ESA": "El Salvador",
	"ESP": "Spain",
	"EST": "Estonia",
	"ETH": "Ethiopia",
	"EUA": "United Team of Germany",
	"EUN": "Unified Team",
	"FIJ": "Fiji",
	"FIN": "Finland",
	"FRA": "France",
	"FRG": "West Germany",
	"FSM": "Federated States of Micronesia",
	"GAB": "Gabon",
	"GAM": "Gambia",
	"GBR": "Great Britain",
	"GBS": "Guinea-Bissau",
	"GDR": "East Germany",
	"GEO": "Georgia",
	"GEQ": "Equatorial Guinea",
	"GER": "Germany",
	"GHA": "Ghana",
	"GRE": "Greece",
	"GRN": "Grenada",
	"GUA": "Guatemala",
	"GUI": "Guinea",
	"GUM": "Guam",
	"GUY": "Guyana",
	"HAI": "Haiti",
	"HKG": "Hong Kong, China",
	"HON": "Honduras",
	"HUN": "Hungary",
	"INA": "Indonesia",
	"IND": "India",
	"IOA": "Independent Olympic Athletes",
	"IOP": "Independent Olympic Participants",
	"IRI": "Iran",
	"IRL": "Ireland",
	"IRQ": "Iraq",
	"ISL": "Iceland",
	"ISR": "Israel",
	"ISV": "Virgin Islands, US",
	"ITA": "Italy",
	"IVB": "British Virgin Islands",
	"JAM": "Jamaica",
	"JOR": "Jordan",
	"JPN": "Japan",
	"KAZ": "Kazakhstan",
	"KEN": "Kenya",
	"KGZ": "Kyrgyzstan",
	"KIR": "Kiribati",
	"KOR": "Republic of Korea",
	"KOS": "Kosovo",
	"KSA": "Saudi Arabia",
	"KUW": "Kuwait",
	"LAO": "Laos",
	"LAT": "Latvia",
	"LBA": "Libya",
	"LBN": "Lebanon",
	"LBR": "Liberia",
	"LCA": "Saint Lucia",
	"LES": "Lesotho",
	"LIE": "Liechtenstein",
	"LTU": "Lithuania",
	"LUX": "Luxembourg",
	"MAD": "Madagascar",
	"MAR": "Morocco",
	"MAS": "Malaysia",
	"MAW": "Malawi",
	"MDA": "Moldova",
	"MDV": "Maldives",
	"MEX": "Mexico",
	"MGL": "Mongolia",
	"MHL": "Marshall Islands",
	"MIX": "Mixed team",
	"MKD": "North Macedonia",
	"MLI": "Mali",
	"MLT": "Malta",
	"MNE": "Montenegro",
	"MON": "Monaco",
	"MOZ": "Mozambique",
	"MRI": "Mauritius",
	"MTN": "Mauritania",
	"MYA": "Myanmar",
	"NAM": "Namibia",
	"NCA": "Nicaragua",
	"NED": "Netherlands",
	"NEP": "Nepal",
	"NGR": "Nigeria",
	"NIG": "Niger",
	"NOR": "Norway",
	"NRU": "Nauru",
	"NZL": "New Zealand",
	"OAR": "Olympic Athletes from Russia",
	"OMA": "Oman",
	"PAK": "Pakistan",
	"PAN": "Panama",
	"PAR": "Paraguay",
	"PER": "Peru",
	"PHI": "Philippines",
	"PLE": "Palestine",
	"PLW": "Palau",
	"PNG": "Papua New Guinea",
	"POL": "Poland",
	"POR": "Portugal",
	"PRK": "DPR Korea",
	"PUR": "Puerto Rico",
	"QAT": "Qatar",
	"RHO": "Rhodesia",
	"ROC": "ROC",
	"ROU": "Romania",
	"RSA": "South Africa",
	"RU1": "Russian Empire",
	"RUS": "Russia",
	"RWA": "Rwanda",
	"SAA": "Saar",
	"SAM": "Samoa",
	"SCG": "Serbia and Montenegro",
	"SEN": "Senegal",
	"SEY": "Seychelles",
	"SGP": "Singapore",
	"SKN": "Saint Kitts and Nevis",
	"SLE": "Sierra Leone",
	"SLO": "Slovenia",
	"SMR": "San Marino",
	"SOL": "Solomon Islands",
	"SOM": "Somalia",
	"SRB": "Serbia",
	"SRI": "Sri Lanka",
	"SSD": "South Sudan",
	"STP": "Sao Tome and Principe",
	"SUD": "Sudan",
	"SUI": "Switzerland",
	"SUR": "Suriname",
	"SVK": "Slovakia",
	"SWE": "Sweden",
	"SWZ": "Eswatini",
	"SYR": "Syria",
	"TAN": "Tanzania",
	"TCH": "Czechoslovakia",
	"TGA": "Tonga",
	"THA": "Thailand",
	"TJK": "Tajikistan",
	"TKM": "Turkmenistan",
	"TLS": "Timor-Leste",
	"TOG": "Togo",
	"TPE": "Chinese Taipei",
	"TTO": "Trinidad and Tobago",
	"TUN": "Tunisia",
	"TUR": "Türkiye",
	"TUV": "Tuvalu",
	"UAE": "United Arab Emirates",
	"UAR": "United Arab Republic",
	"UGA": "Uganda",
	"UKR": "Ukraine",
	"URS": "Soviet Union",
	"URU": "Uruguay",
	"USA": "United States",
	"UZB": "Uzbekistan",
	"VAN": "Vanuatu",
	"VEN": "Venezuela",
	"VIE": "Vietnam",
	"VIN": "Saint Vincent and the Grenadines",
	"WIF": "West Indies Federation",
	"YEM": "Yemen",
	"YUG": "Yugoslavia",
	"ZAM": "Zambia",
	"ZIM": "Zimbabwe",
}
